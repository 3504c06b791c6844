package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
)

const limiterIdle = time.Hour

// RateLimiter hands out one token bucket per client ip.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter allows perWindow requests per window and ip, refilled
// evenly. A non-positive perWindow disables limiting.
func NewRateLimiter(perWindow int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: map[string]*limiterEntry{},
		rate:     rate.Inf,
		burst:    perWindow,
		now:      time.Now,
	}
	if perWindow > 0 {
		rl.rate = rate.Every(window / time.Duration(perWindow))
	}
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	if rl.rate == rate.Inf {
		return true
	}

	rl.mu.Lock()
	now := rl.now()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Sweep drops buckets idle for over an hour.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := rl.now().Add(-limiterIdle)
	for ip, e := range rl.limiters {
		if e.lastAccess.Before(threshold) {
			delete(rl.limiters, ip)
		}
	}
}

// Middleware answers 429 once the caller's bucket is empty.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "too many requests, please slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
