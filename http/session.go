package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wtfSpaces/auth"
	"wtfSpaces/errs"
)

func (s *Server) registerSessionRoutes(r *mux.Router) {
	r.HandleFunc("/me", s.requireAuth(s.handleMe)).Methods("GET")
}

// handleMe handles the route "GET /me".
// It returns the user bound to the request's session.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r.Context())
	if err := json.NewEncoder(w).Encode(session.User); err != nil {
		errs.LogError(r, err)
	}
}

// The authenticate middleware resolves the request's session from its
// bearer token. Requests without an Authorization header pass through
// unauthenticated; a presented but unverifiable token, or a verified
// token with an unusable subject, is rejected right here.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHENTICATED, "Authorization header must carry a bearer token."))
			return
		}
		subject, err := s.verifier.Subject(tokenString)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		session, err := s.ss.ResolveSession(r.Context(), subject)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		r = r.WithContext(auth.SetSession(r.Context(), session))
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests whose session carries no user.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := auth.GetSession(r.Context())
		if !session.Authenticated() {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHENTICATED, "You must be logged in."))
			return
		}
		next.ServeHTTP(w, r)
	}
}
