package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfSpaces/auth"
	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	// List all users.
	r.HandleFunc("/users", s.handleListUsers).Methods("GET")

	// Get the profile data of a specific user.
	r.HandleFunc("/users/{unique_name}", s.handleGetUser).Methods("GET")

	// Update the user's profile data.
	r.HandleFunc("/profile/update", s.requireAuth(s.handleUpdateProfile)).Methods("PUT")

	// Relationship listings of a specific user.
	r.HandleFunc("/users/{user_id}/hosted", s.handleListHosted).Methods("GET")
	r.HandleFunc("/users/{user_id}/following", s.handleListFollowing).Methods("GET")
}

// handleListUsers handles the route "GET /users".
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.us.All(r.Context())
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(users); err != nil {
		errs.LogError(r, err)
	}
}

// handleGetUser handles the route "GET /users/{unique_name}".
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	uniqueName := mux.Vars(r)["unique_name"]
	user, err := s.us.ByUniqueName(r.Context(), uniqueName)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
	}
}

// handleUpdateProfile handles the route "PUT /profile/update".
// It reads user data from the json body and updates the session user's record.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.User
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid update data."))
		return
	}

	// A user may only update its own record.
	user := auth.GetSession(r.Context()).User
	if update.ID != "" && update.ID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to update this user."))
		return
	}
	// Absent fields keep their current value, so a client can change the
	// display name without re-sending the unique name.
	if update.UniqueName != "" {
		user.UniqueName = update.UniqueName
	}
	if update.DisplayName != "" {
		user.DisplayName = update.DisplayName
	}
	if update.Picture != "" {
		user.Picture = update.Picture
	}

	if err := s.us.Update(r.Context(), user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
	}
}

// handleListHosted handles the route "GET /users/{user_id}/hosted".
// It pages through the spaces the user hosts.
func (s *Server) handleListHosted(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	req, finished, order, err := parseListingParams(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	page, err := s.sps.HostedSpaces(r.Context(), userID, req, finished, order)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(page); err != nil {
		errs.LogError(r, err)
	}
}

// handleListFollowing handles the route "GET /users/{user_id}/following".
// It pages through the spaces the user follows.
func (s *Server) handleListFollowing(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	req, finished, order, err := parseListingParams(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	page, err := s.fs.FollowedSpaces(r.Context(), userID, req, finished, order)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(page); err != nil {
		errs.LogError(r, err)
	}
}

// defaultTake is the page size used when a listing request names none.
const defaultTake = 20

// parseListingParams reads take, cursor, finished and order from the query
// string of a relationship listing request.
func parseListingParams(r *http.Request) (domain.PageRequest, bool, domain.SortOrder, error) {
	q := r.URL.Query()

	take := defaultTake
	if raw := q.Get("take"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, "", errs.Errorf(errs.EINVALID, "Take must be a number.")
		}
		take = parsed
	}

	var req domain.PageRequest
	if cursor := q.Get("cursor"); cursor != "" {
		req = domain.NextPage{Cursor: cursor, Take: take}
	} else {
		req = domain.FirstPage{Take: take}
	}

	finished := false
	if raw := q.Get("finished"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false, "", errs.Errorf(errs.EINVALID, "Finished must be true or false.")
		}
		finished = parsed
	}

	order := domain.Asc
	if raw := q.Get("order"); raw != "" {
		order = domain.SortOrder(raw)
	}

	return req, finished, order, nil
}
