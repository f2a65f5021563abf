package domain

import (
	"context"
	"time"
)

// Space is a hostable venue owned by exactly one User, its host. Space
// lifecycle (creation, finishing) is managed elsewhere; this core reads
// the host, the open date and the finished flag.
type Space struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	HostUserID string    `json:"host_user_id" gorm:"notNull;index"`
	Title      string    `json:"title"`
	OpenDate   time.Time `json:"open_date"`
	Finished   bool      `json:"finished" gorm:"notNull;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpaceService is a set of methods to read Spaces and list the spaces a
// user hosts.
type SpaceService interface {
	ByID(ctx context.Context, id string) (*Space, error)

	// HostUserID returns the id of the space's host, or an ENOTFOUND
	// error if the space does not exist.
	HostUserID(ctx context.Context, spaceID string) (string, error)

	// HostedSpaces pages through the spaces hosted by the given user,
	// filtered by the finished flag, ordered by open date.
	HostedSpaces(ctx context.Context, hostUserID string, req PageRequest, finished bool, order SortOrder) (*Page, error)
}
