package middleware

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter per client IP stored in Redis.
type RateLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	now    func() time.Time

	// Next skips the limiter for a request when it returns true.
	Next func(c fiber.Ctx) bool
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		client: client,
		max:    limit,
		window: window,
		now:    time.Now,
	}
}

// SkipPaths returns a Next func that exempts requests whose path equals one of paths.
func SkipPaths(paths ...string) func(c fiber.Ctx) bool {
	return func(c fiber.Ctx) bool {
		for _, p := range paths {
			if c.Path() == p {
				return true
			}
		}
		return false
	}
}

// Allow counts one hit for key and reports whether it is within the limit. When it is
// not, retryAfter is the time left in the current window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("failed to count request: %w", err)
	}

	if incr.Val() <= int64(l.max) {
		return true, 0, nil
	}
	return false, windowStart.Add(l.window).Sub(now), nil
}

// Handler rejects requests over the limit with 429. Redis errors let the request
// through.
func (l *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if l.Next != nil && l.Next(c) {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		allowed, retryAfter, err := l.Allow(ctx, c.IP())
		if err != nil {
			log.Printf("Rate limiter unavailable, allowing request: %v", err)
			return c.Next()
		}

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}

		return c.Next()
	}
}
