package middleware

import (
	"net/http"
	"sync"
	"time"

	"adminpanel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of client IPs to their rate limiters.
type rateLimiterStore struct {
	limiters  map[string]*ipLimiter
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// newRateLimiterStore allows max requests per window and IP, refilled evenly
// across the window with the full allowance available as a burst.
func newRateLimiterStore(max int, window time.Duration) *rateLimiterStore {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &rateLimiterStore{
		limiters:  make(map[string]*ipLimiter),
		limit:     rate.Every(window / time.Duration(max)),
		burst:     max,
		window:    window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.window {
		s.evictIdle(now)
		s.lastSweep = now
	}

	entry, exists := s.limiters[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// evictIdle drops limiters unused for a whole window; they have refilled to
// the full burst, so a fresh limiter is equivalent.
func (s *rateLimiterStore) evictIdle(now time.Time) {
	for ip, entry := range s.limiters {
		if now.Sub(entry.lastSeen) >= s.window {
			delete(s.limiters, ip)
		}
	}
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware limits requests per client IP. The IP comes from
// gin's ClientIP, so forwarding headers only count when the engine trusts
// the immediate peer as a proxy.
func RateLimitMiddleware(maxPerWindow int, window time.Duration) gin.HandlerFunc {
	return rateLimit(newRateLimiterStore(maxPerWindow, window))
}

func rateLimit(store *rateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.AbortJSONError(c, http.StatusTooManyRequests, "Too many requests from this IP, please try again later")
			return
		}
		c.Next()
	}
}
