package http

import (
	"context"
	"fmt"

	"wtfSpaces/auth"
	"wtfSpaces/domain"
	"wtfSpaces/errs"
	"wtfSpaces/metrics"
)

// fakeBackend implements all four domain service interfaces in memory, so
// the handlers can be exercised without a database. Listing calls record
// the arguments they were invoked with and return a canned page.
type fakeBackend struct {
	sessions map[string]*domain.Session // keyed by subject claim
	users    map[string]*domain.User    // keyed by id
	spaces   map[string]*domain.Space   // keyed by id

	followings map[string]*domain.Following // keyed by spaceID+"|"+userID
	upserts    int

	lastPageReq  domain.PageRequest
	lastFinished bool
	lastOrder    domain.SortOrder
	page         *domain.Page
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		sessions:   make(map[string]*domain.Session),
		users:      make(map[string]*domain.User),
		spaces:     make(map[string]*domain.Space),
		followings: make(map[string]*domain.Following),
		page:       &domain.Page{Edges: []domain.Edge{}},
	}
}

var _ domain.SessionService = (*fakeBackend)(nil)
var _ domain.UserService = (*fakeBackend)(nil)
var _ domain.FollowingService = (*fakeBackend)(nil)

func (f *fakeBackend) ResolveSession(ctx context.Context, subject string) (*domain.Session, error) {
	session, ok := f.sessions[subject]
	if !ok {
		return nil, errs.Errorf(errs.EINVALID, "Subject claim is malformed.")
	}
	return session, nil
}

func (f *fakeBackend) ByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
	}
	return user, nil
}

func (f *fakeBackend) ByUniqueName(ctx context.Context, uniqueName string) (*domain.User, error) {
	for _, user := range f.users {
		if user.UniqueName == uniqueName {
			return user, nil
		}
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
}

func (f *fakeBackend) All(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeBackend) Update(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeBackend) spaceByID(id string) (*domain.Space, bool) {
	space, ok := f.spaces[id]
	return space, ok
}

func (f *fakeBackend) HostUserID(ctx context.Context, spaceID string) (string, error) {
	space, ok := f.spaceByID(spaceID)
	if !ok {
		return "", errs.Errorf(errs.ENOTFOUND, "The space does not exist.")
	}
	return space.HostUserID, nil
}

func (f *fakeBackend) HostedSpaces(ctx context.Context, hostUserID string, req domain.PageRequest, finished bool, order domain.SortOrder) (*domain.Page, error) {
	f.lastPageReq, f.lastFinished, f.lastOrder = req, finished, order
	return f.page, nil
}

func (f *fakeBackend) Upsert(ctx context.Context, spaceID, userID string) (*domain.Following, error) {
	key := spaceID + "|" + userID
	f.upserts++
	if existing, ok := f.followings[key]; ok {
		return existing, nil
	}
	following := &domain.Following{
		ID:      fmt.Sprintf("f%d", len(f.followings)+1),
		SpaceID: spaceID,
		UserID:  userID,
	}
	f.followings[key] = following
	return following, nil
}

func (f *fakeBackend) IsFollowing(ctx context.Context, userID, spaceID string) (bool, error) {
	_, ok := f.followings[spaceID+"|"+userID]
	return ok, nil
}

func (f *fakeBackend) FollowedSpaces(ctx context.Context, userID string, req domain.PageRequest, finished bool, order domain.SortOrder) (*domain.Page, error) {
	f.lastPageReq, f.lastFinished, f.lastOrder = req, finished, order
	return f.page, nil
}

// spaceService narrows fakeBackend to the space side. It exists because
// the user ByID and the space ByID differ only in return type, so one
// struct cannot carry both method sets.
type spaceService struct {
	*fakeBackend
}

var _ domain.SpaceService = spaceService{}

func (s spaceService) ByID(ctx context.Context, id string) (*domain.Space, error) {
	space, ok := s.spaceByID(id)
	if !ok {
		return nil, errs.Errorf(errs.ENOTFOUND, "The space does not exist.")
	}
	return space, nil
}

// newTestServer builds a Server over the fake backend with the
// passthrough verifier, so a request authenticates with
// "Authorization: Bearer <subject>".
func newTestServer(collector *metrics.Collector) (*Server, *fakeBackend) {
	backend := newFakeBackend()
	server := NewServer(
		false,
		"",
		auth.PassthroughVerifier{},
		collector,
		backend,
		backend,
		spaceService{backend},
		backend,
	)
	return server, backend
}
