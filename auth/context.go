package auth

import (
	"context"

	"wtfSpaces/domain"
)

const (
	sessionKey privateKey = "session"
)

type privateKey string

// SetSession stores the resolved session of the current request.
func SetSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession returns the session stored in the context, or nil if the
// request never authenticated.
func GetSession(ctx context.Context) *domain.Session {
	if temp := ctx.Value(sessionKey); temp != nil {
		if session, ok := temp.(*domain.Session); ok {
			return session
		}
	}
	return nil
}
