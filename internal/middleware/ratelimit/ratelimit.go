// Package ratelimit provides rate limiting middleware for the public view
// endpoints. The beacon route accepts unauthenticated writes, so a per-IP cap
// keeps a single client from inflating counts or hammering the store.
package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/solstack/site/internal/pkg/log"
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	// Max requests allowed per window
	Max int

	// Window is the expiration window for the counter
	Window time.Duration

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// Custom key generator (optional - buckets by IP + path if not provided)
	KeyGenerator func(c *fiber.Ctx) string

	// LimitReached defines the response when rate limit is exceeded
	LimitReached func(c *fiber.Ctx) error
}

// configDefault sets default configuration values
func configDefault(config Config) Config {
	if config.Max <= 0 {
		config.Max = 60
	}

	if config.Window <= 0 {
		config.Window = 1 * time.Minute
	}

	// Rate limit by IP + endpoint path
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}

	if config.LimitReached == nil {
		window := config.Window
		config.LimitReached = func(c *fiber.Ctx) error {
			log.Warn("[RateLimit] Rate limit exceeded from IP: %s on %s", c.IP(), c.Path())

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    "Too many requests. Please try again later.",
				"retryAfter": int(window.Seconds()),
			})
		}
	}

	return config
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	return limiter.New(limiter.Config{
		Max:          cfg.Max,
		Expiration:   cfg.Window,
		KeyGenerator: cfg.KeyGenerator,
		LimitReached: cfg.LimitReached,
		Next:         cfg.Next,
	})
}

// NewBeaconLimiter creates a rate limiter for the view beacon endpoint.
// A real reader produces one beacon per page load, so the cap can sit far
// above human browsing rates and still shut out scripted loops.
func NewBeaconLimiter() fiber.Handler {
	return New(Config{
		Max:    120,
		Window: 1 * time.Minute,
	})
}
