package domain

import (
	"context"
	"time"
)

// User is the application identity. Every User belongs to exactly one
// Account; both are created together on first login.
type User struct {
	ID          string `json:"id" gorm:"primaryKey"`
	AccountID   string `json:"-" gorm:"notNull;uniqueIndex"`
	UniqueName  string `json:"unique_name" gorm:"notNull;uniqueIndex"`
	DisplayName string `json:"display_name"`
	Picture     string `json:"picture"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to look up and update Users.
type UserService interface {
	ByID(ctx context.Context, id string) (*User, error)
	ByUniqueName(ctx context.Context, uniqueName string) (*User, error)
	All(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
}
