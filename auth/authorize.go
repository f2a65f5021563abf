package auth

import (
	"context"

	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

// AuthorizeFollow decides whether the session may create a follow edge
// from the given user to the given space. It returns nil if the mutation
// is allowed, or an error with one of the codes EUNAUTHENTICATED,
// EUNAUTHORIZED or ENOTFOUND.
//
// The checks run in a fixed order: session first, then actor identity,
// then space existence, then host ownership. An unauthenticated or
// impersonating caller is rejected before it can learn whether the space
// exists.
func AuthorizeFollow(ctx context.Context, session *domain.Session, spaceID, userID string, spaces domain.SpaceService) error {
	return runFollowAuthFns(ctx, session, spaceID, userID,
		sessionRequired,
		actorIsSelf,
		spaceHostAllows(spaces),
	)
}

// A followAuthFn is one check of the follow authorization chain.
type followAuthFn func(ctx context.Context, session *domain.Session, spaceID, userID string) error

// runFollowAuthFns runs the checks in order and stops at the first failure.
func runFollowAuthFns(ctx context.Context, session *domain.Session, spaceID, userID string, fns ...followAuthFn) error {
	for _, fn := range fns {
		if err := fn(ctx, session, spaceID, userID); err != nil {
			return err
		}
	}
	return nil
}

// sessionRequired makes sure the request carries an authenticated user.
func sessionRequired(_ context.Context, session *domain.Session, _, _ string) error {
	if !session.Authenticated() {
		return errs.Errorf(errs.EUNAUTHENTICATED, "You must be logged in to follow a space.")
	}
	return nil
}

// actorIsSelf makes sure a user only creates follow edges for itself.
func actorIsSelf(_ context.Context, session *domain.Session, _, userID string) error {
	if session.User.ID != userID {
		return errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to follow on behalf of another user.")
	}
	return nil
}

// spaceHostAllows makes sure the space exists and that the follower is not
// its host. The host lookup distinguishes a missing space from a
// mismatched host, so a missing space surfaces as ENOTFOUND rather than a
// silent pass or deny.
func spaceHostAllows(spaces domain.SpaceService) followAuthFn {
	return func(ctx context.Context, _ *domain.Session, spaceID, userID string) error {
		hostUserID, err := spaces.HostUserID(ctx, spaceID)
		if err != nil {
			return err
		}
		if hostUserID == userID {
			return errs.Errorf(errs.EUNAUTHORIZED, "You cannot follow your own space.")
		}
		return nil
	}
}
