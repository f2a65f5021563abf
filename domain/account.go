package domain

import (
	"context"
	"time"
)

// Account is the external login identity. The Provider and ProviderID
// pair comes from the token's subject claim and is unique across the
// system; the owned User carries everything the application shows.
type Account struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Provider   string `json:"provider" gorm:"notNull;uniqueIndex:idx_accounts_provider_identity"`
	ProviderID string `json:"provider_id" gorm:"notNull;uniqueIndex:idx_accounts_provider_identity"`

	User *User `json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the per-request caller identity. A nil or user-less
// Session means the request is anonymous.
type Session struct {
	User *User `json:"user"`
}

// Authenticated reports whether the session carries a resolved user.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// SessionService resolves a verified subject claim into a Session,
// provisioning the Account and User on first contact.
type SessionService interface {
	ResolveSession(ctx context.Context, subject string) (*Session, error)
}
