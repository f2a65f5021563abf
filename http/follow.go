package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"wtfSpaces/auth"
	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/spaces/{space_id}", s.handleGetSpace).Methods("GET")
	r.HandleFunc("/spaces/{space_id}/follow", s.requireAuth(s.limiter.limit(s.handleFollowSpace))).Methods("POST")
}

// handleGetSpace handles the route "GET /spaces/{space_id}".
// It returns the space, and whether the session user follows it.
func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]
	space, err := s.sps.ByID(r.Context(), spaceID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := struct {
		Space       *domain.Space `json:"space"`
		IsFollowing bool          `json:"is_following"`
	}{Space: space}

	if session := auth.GetSession(r.Context()); session.Authenticated() {
		isFollowing, err := s.fs.IsFollowing(r.Context(), session.User.ID, spaceID)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		response.IsFollowing = isFollowing
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		errs.LogError(r, err)
	}
}

// handleFollowSpace handles the route "POST /spaces/{space_id}/follow".
// The body may name the user the edge is for; it defaults to the session
// user. The authorization guard runs before the upsert and rejects
// impersonation and host self-follows.
func (s *Server) handleFollowSpace(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]
	session := auth.GetSession(r.Context())

	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}
	userID := body.UserID
	if userID == "" {
		userID = session.User.ID
	}

	if err := auth.AuthorizeFollow(r.Context(), session, spaceID, userID, s.sps); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	following, err := s.fs.Upsert(r.Context(), spaceID, userID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if s.collector != nil {
		s.collector.RecordFollowUpsert()
	}

	if err := json.NewEncoder(w).Encode(following); err != nil {
		errs.LogError(r, err)
	}
}
