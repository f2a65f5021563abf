package domain

import (
	"context"
	"time"
)

// Following represents a many-to-many relationship between a User and a
// Space. A Following is created when a user decides to follow a space.
// There is at most one Following per (SpaceID, UserID) pair, and a user
// never follows a space it hosts.
type Following struct {
	ID      string `json:"id" gorm:"primaryKey"`
	SpaceID string `json:"space_id" gorm:"notNull;uniqueIndex:idx_followings_space_user"`
	UserID  string `json:"user_id" gorm:"notNull;uniqueIndex:idx_followings_space_user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowingService is a set of methods to manipulate and list Following
// edges.
type FollowingService interface {
	// Upsert creates the Following for (spaceID, userID) or, if it
	// already exists, bumps its UpdatedAt. Callers are expected to have
	// authorized the mutation first.
	Upsert(ctx context.Context, spaceID, userID string) (*Following, error)

	// IsFollowing reports whether the user currently follows the space.
	IsFollowing(ctx context.Context, userID, spaceID string) (bool, error)

	// FollowedSpaces pages through the user's followings, filtered by
	// the related space's finished flag, ordered by when the following
	// was last updated.
	FollowedSpaces(ctx context.Context, userID string, req PageRequest, finished bool, order SortOrder) (*Page, error)
}
