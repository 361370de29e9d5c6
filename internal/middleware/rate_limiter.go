package middleware

import (
	"sync"
	"time"

	"charity-transparency/internal/errors"
	"charity-transparency/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurstSize         = 10

	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. A sweeper goroutine
// evicts idle buckets while any exist and exits once the map is empty.
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int

	ttl      time.Duration
	every    time.Duration
	sweeping bool
}

func newIPRateLimiter(rps, burst int) *ipRateLimiter {
	if rps < 1 {
		rps = defaultRequestsPerSecond
	}
	if burst < 1 {
		burst = defaultBurstSize
	}
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      visitorTTL,
		every:    cleanupInterval,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rps, l.burst)
		l.visitors[ip] = &visitor{limiter, time.Now()}
		if !l.sweeping {
			l.sweeping = true
			go l.sweep()
		}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (l *ipRateLimiter) sweep() {
	ticker := time.NewTicker(l.every)
	defer ticker.Stop()

	for range ticker.C {
		if !l.evictIdle() {
			return
		}
	}
}

// evictIdle runs one sweep and reports whether the sweeper should keep going.
// The flag is cleared under the same lock get uses, so the next new client
// starts a fresh sweeper.
func (l *ipRateLimiter) evictIdle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictLocked(l.ttl)
	if len(l.visitors) == 0 {
		l.sweeping = false
		return false
	}
	return true
}

func (l *ipRateLimiter) cleanup(olderThan time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evictLocked(olderThan)
}

func (l *ipRateLimiter) evictLocked(olderThan time.Duration) {
	for ip, v := range l.visitors {
		if time.Since(v.lastSeen) > olderThan {
			delete(l.visitors, ip)
		}
	}
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *ipRateLimiter) isSweeping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweeping
}

// RateLimiter limits requests per client IP with the default rate
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurstSize)
}

// RateLimiterWithConfig limits requests per client IP. Each call owns its own
// set of buckets, so routes can be limited independently. The client IP comes
// from c.RealIP, so forwarded headers only count when the echo instance has an
// IPExtractor that trusts the proxy (see ClientIPExtractor).
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	limiter := newIPRateLimiter(rps, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.get(c.RealIP()).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}

			return next(c)
		}
	}
}
