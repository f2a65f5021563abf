package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

// fakeSpaceService answers host lookups from a fixed spaceID -> hostUserID
// map and records whether it was consulted at all.
type fakeSpaceService struct {
	hosts    map[string]string
	consults int
}

func (f *fakeSpaceService) ByID(ctx context.Context, id string) (*domain.Space, error) {
	host, ok := f.hosts[id]
	if !ok {
		return nil, errs.Errorf(errs.ENOTFOUND, "The space does not exist.")
	}
	return &domain.Space{ID: id, HostUserID: host}, nil
}

func (f *fakeSpaceService) HostUserID(ctx context.Context, spaceID string) (string, error) {
	f.consults++
	host, ok := f.hosts[spaceID]
	if !ok {
		return "", errs.Errorf(errs.ENOTFOUND, "The space does not exist.")
	}
	return host, nil
}

func (f *fakeSpaceService) HostedSpaces(ctx context.Context, hostUserID string, req domain.PageRequest, finished bool, order domain.SortOrder) (*domain.Page, error) {
	return &domain.Page{}, nil
}

func sessionFor(userID string) *domain.Session {
	return &domain.Session{User: &domain.User{ID: userID}}
}

func TestAuthorizeFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("ok for a non-host follower", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{"s1": "u2"}}
		err := AuthorizeFollow(ctx, sessionFor("u1"), "s1", "u1", spaces)
		require.NoError(t, err)
	})

	t.Run("unauthenticated without a session", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{"s1": "u2"}}
		err := AuthorizeFollow(ctx, nil, "s1", "u1", spaces)
		assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
	})

	t.Run("unauthenticated with an empty session", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{"s1": "u2"}}
		err := AuthorizeFollow(ctx, &domain.Session{}, "s1", "u1", spaces)
		assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
	})

	t.Run("unauthorized for another user", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{"s1": "u2"}}
		err := AuthorizeFollow(ctx, sessionFor("u1"), "s1", "u3", spaces)
		assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
	})

	t.Run("not found for a missing space", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{}}
		err := AuthorizeFollow(ctx, sessionFor("u1"), "nope", "u1", spaces)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})

	t.Run("unauthorized for the host", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{"s1": "u1"}}
		err := AuthorizeFollow(ctx, sessionFor("u1"), "s1", "u1", spaces)
		assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
	})

	t.Run("identity is checked before space existence", func(t *testing.T) {
		// An impersonating caller must not learn whether the space
		// exists, so the host lookup never runs for it.
		spaces := &fakeSpaceService{hosts: map[string]string{}}
		err := AuthorizeFollow(ctx, sessionFor("u1"), "nope", "u3", spaces)
		assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
		assert.Zero(t, spaces.consults)
	})

	t.Run("session is checked before identity", func(t *testing.T) {
		spaces := &fakeSpaceService{hosts: map[string]string{}}
		err := AuthorizeFollow(ctx, nil, "nope", "u3", spaces)
		assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
		assert.Zero(t, spaces.consults)
	})
}
