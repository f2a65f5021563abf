package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"wtfSpaces/domain"
	"wtfSpaces/metrics"
)

// SubjectVerifier checks a raw bearer token and returns its subject claim.
// Satisfied by auth.TokenVerifier; tests plug in a fake.
type SubjectVerifier interface {
	Subject(tokenString string) (string, error)
}

// Server provides the http functionality of this app, namely routing,
// request handling, and middleware. It resolves the session and performs
// authorization before handing things over to one of the crud services.
type Server struct {
	router    *mux.Router
	verifier  SubjectVerifier
	collector *metrics.Collector
	limiter   *userRateLimiter
	ss        domain.SessionService
	us        domain.UserService
	sps       domain.SpaceService
	fs        domain.FollowingService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(
	isProd bool,
	csrfAuthKey string,
	verifier SubjectVerifier,
	collector *metrics.Collector,
	ss domain.SessionService,
	us domain.UserService,
	sps domain.SpaceService,
	fs domain.FollowingService,
) *Server {

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router:    mux.NewRouter(),
		verifier:  verifier,
		collector: collector,
		limiter:   newUserRateLimiter(defaultRateLimit, defaultRateBurst),
		ss:        ss,
		us:        us,
		sps:       sps,
		fs:        fs,
	}

	// Register routes of the session system.
	s.registerSessionRoutes(s.router)

	// Register routes of the relationship system.
	s.registerUserRoutes(s.router)
	s.registerFollowRoutes(s.router)

	// Expose prometheus metrics.
	if collector != nil {
		s.router.Handle("/metrics", collector.Handler()).Methods("GET")
	}

	// Set up middleware that needs to run on every request. API clients
	// authenticate with a bearer token on every call, so the CSRF
	// round-trip is only enforced in production where browsers may share
	// cookies with the client app.
	if isProd {
		csrfMw := csrf.Protect([]byte(csrfAuthKey), csrf.Secure(true), csrf.Path("/"))
		s.router.Use(csrfMw)
	}
	s.router.Use(s.instrument, setContentTypeJSON, s.authenticate)
	return s
}

// ServeHTTP makes the server usable as a handler, mostly for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// The instrument middleware records a request counter and latency
// histogram per route template.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.collector == nil {
			next.ServeHTTP(w, r)
			return
		}
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)
		s.collector.RecordRequest(route, recorder.status, time.Since(start))
	})
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	addr := ":" + strconv.Itoa(port)
	slog.Info("server listening", slog.String("addr", addr))
	return http.ListenAndServe(addr, s.router)
}
