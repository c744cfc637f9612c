// middleware/ratelimit.go
package middleware

import (
	"sync"
	"time"

	"taskboard/config"

	"github.com/gofiber/fiber/v2"
)

// Token bucket rate limiter implementation
type TokenBucket struct {
	tokens         float64
	maxTokens      float64
	refillRate     float64 // tokens per second
	lastRefillTime time.Time
}

func NewTokenBucket(maxTokens, refillRate float64, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: now,
	}
}

func (tb *TokenBucket) allow(now time.Time) bool {
	elapsed := now.Sub(tb.lastRefillTime).Seconds()
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastRefillTime = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimiter keeps one bucket per key. Buckets idle for a whole window are
// full again, so they are dropped on the next sweep.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	max       int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
		max:     maxRequests,
		window:  window,
		now:     time.Now,
	}
}

// Allow takes one token from key's bucket.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
	}

	bucket, exists := rl.buckets[key]
	if !exists {
		refillRate := float64(rl.max) / rl.window.Seconds()
		bucket = NewTokenBucket(float64(rl.max), refillRate, now)
		rl.buckets[key] = bucket
	}
	return bucket.allow(now)
}

func (rl *RateLimiter) sweep(now time.Time) {
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefillTime) >= rl.window {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}

// Len reports how many buckets are tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// AuthRateLimit limits signup and login attempts per client IP.
func AuthRateLimit(cfg config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := NewRateLimiter(cfg.AuthMax, cfg.AuthWindow)
	return RateLimit(limiter, "Too many authentication attempts. Please try again later.")
}

// APIRateLimit is the general per-IP limit for the whole API.
func APIRateLimit(cfg config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled || cfg.APIMax <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := NewRateLimiter(cfg.APIMax, cfg.APIWindow)
	return RateLimit(limiter, "Too many requests. Please slow down.")
}

// RateLimit answers 429 once the caller's bucket is empty.
func RateLimit(limiter *RateLimiter, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": message})
		}
		return c.Next()
	}
}
