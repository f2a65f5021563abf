package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSpaces/domain"
)

func get(server *Server, path, bearer string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", path, nil)
	if bearer != "" {
		r.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, r)
	return w
}

func TestMe(t *testing.T) {
	server, backend := newTestServer(nil)
	seedFollowWorld(backend)

	t.Run("returns the session user", func(t *testing.T) {
		w := get(server, "/me", "twitter|1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"unique_name":"alice"`)
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		w := get(server, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed authorization header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/me", nil)
		r.Header.Set("Authorization", "Token twitter|1")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUser(t *testing.T) {
	server, backend := newTestServer(nil)
	seedFollowWorld(backend)

	w := get(server, "/users/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)

	w = get(server, "/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates the session user", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		r := httptest.NewRequest("PUT", "/profile/update", strings.NewReader(`{"unique_name":"alice2"}`))
		r.Header.Set("Authorization", "Bearer twitter|1")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice2", backend.users["u1"].UniqueName)
	})

	t.Run("keeps the unique name when the body omits it", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		r := httptest.NewRequest("PUT", "/profile/update", strings.NewReader(`{"display_name":"Alice A."}`))
		r.Header.Set("Authorization", "Bearer twitter|1")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", backend.users["u1"].UniqueName)
		assert.Equal(t, "Alice A.", backend.users["u1"].DisplayName)
	})

	t.Run("rejects updating another user", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		r := httptest.NewRequest("PUT", "/profile/update", strings.NewReader(`{"id":"u2","unique_name":"stolen"}`))
		r.Header.Set("Authorization", "Bearer twitter|1")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "bob", backend.users["u2"].UniqueName)
	})
}

func TestListingParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		w := get(server, "/users/u1/hosted", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.FirstPage{Take: defaultTake}, backend.lastPageReq)
		assert.False(t, backend.lastFinished)
		assert.Equal(t, domain.Asc, backend.lastOrder)
	})

	t.Run("explicit first page", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		w := get(server, "/users/u1/hosted?take=2&finished=true&order=desc", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.FirstPage{Take: 2}, backend.lastPageReq)
		assert.True(t, backend.lastFinished)
		assert.Equal(t, domain.Desc, backend.lastOrder)
	})

	t.Run("continuation", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		w := get(server, "/users/u1/following?take=2&cursor=c9", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.NextPage{Cursor: "c9", Take: 2}, backend.lastPageReq)
	})

	t.Run("rejects a non-numeric take", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		w := get(server, "/users/u1/hosted?take=lots", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a non-boolean finished", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		w := get(server, "/users/u1/following?finished=maybe", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page json carries edges and page info", func(t *testing.T) {
		server, backend := newTestServer(nil)
		seedFollowWorld(backend)
		backend.page = &domain.Page{
			Edges: []domain.Edge{
				{Cursor: "c1", Node: domain.EdgeNode{SpaceID: "s1", UserID: "u1"}},
			},
			PageInfo: domain.PageInfo{EndCursor: "c1", HasNextPage: true},
		}
		w := get(server, "/users/u1/hosted?take=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"end_cursor":"c1"`)
		assert.Contains(t, w.Body.String(), `"has_next_page":true`)
		assert.Contains(t, w.Body.String(), `"space_id":"s1"`)
	})
}
