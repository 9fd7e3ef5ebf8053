package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/forgo/foodfest/api/internal/metrics"
	"github.com/forgo/foodfest/api/internal/model"
)

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	idle     time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	RPS     float64       // Sustained requests per second (default 20)
	Burst   int           // Max burst (default 40)
	Idle    time.Duration // Buckets unused this long are dropped (default 10 minutes)
	Cleanup time.Duration // Cleanup interval (default 1 minute)
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RPS <= 0 {
		cfg.RPS = 20
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 40
	}
	if cfg.Idle <= 0 {
		cfg.Idle = 10 * time.Minute
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Minute
	}

	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		idle:     cfg.Idle,
		stopChan: make(chan struct{}),
	}

	go rl.cleanupLoop(cfg.Cleanup)

	return rl
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupIdle(time.Now())
		case <-rl.stopChan:
			return
		}
	}
}

func (rl *RateLimiter) cleanupIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.idle)
	for key, e := range rl.limiters {
		if e.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Allow reports whether key may make a request now. When it may not,
// retryAfter is how long until a token is available.
func (rl *RateLimiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastAccess = now
	limiter := e.limiter
	rl.mu.Unlock()

	r := limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// RateLimit returns a middleware that applies per-client rate limiting
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, wait := limiter.Allow(clientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.burst))

			if !allowed {
				retryAfter := int(math.Ceil(wait.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				metrics.RecordRateLimited()

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of the remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
