package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"wtfSpaces/auth"
)

// Follow mutations per user: a short burst, refilling at one per second.
const (
	defaultRateLimit = rate.Limit(1)
	defaultRateBurst = 10

	limiterTTL = 10 * time.Minute
)

// userRateLimiter keeps one token bucket per user id. Entries that have
// not been touched for limiterTTL are dropped on the fly, so the map does
// not grow with every user ever seen.
type userRateLimiter struct {
	rateLimit rate.Limit
	burst     int

	mu       sync.Mutex
	limiters map[string]*userLimiterEntry
	lastSeen time.Time
}

type userLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newUserRateLimiter(limit rate.Limit, burst int) *userRateLimiter {
	return &userRateLimiter{
		rateLimit: limit,
		burst:     burst,
		limiters:  make(map[string]*userLimiterEntry),
	}
}

// limit wraps a handler that runs after requireAuth, so a session user is
// always present.
func (rl *userRateLimiter) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.GetSession(r.Context()).User.ID
		if !rl.allow(userID) {
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Too many requests, try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (rl *userRateLimiter) allow(userID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSeen) > limiterTTL {
		rl.cleanupLocked(now)
	}
	rl.lastSeen = now

	entry, ok := rl.limiters[userID]
	if !ok {
		entry = &userLimiterEntry{limiter: rate.NewLimiter(rl.rateLimit, rl.burst)}
		rl.limiters[userID] = entry
	}
	entry.lastAccess = now
	return entry.limiter.Allow()
}

func (rl *userRateLimiter) cleanupLocked(now time.Time) {
	for userID, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > limiterTTL {
			delete(rl.limiters, userID)
		}
	}
}
