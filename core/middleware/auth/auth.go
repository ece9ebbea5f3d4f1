package auth

import "github.com/gofiber/fiber/v2"

// Config holds configuration for the API key middleware.
type Config struct {
	// ApiKey is the expected key. When empty the middleware is a no-op,
	// which keeps local development friction-free.
	ApiKey string
	// Next skips the middleware for a request when it returns true. Used to
	// exempt the webhook intake route, which the source platform calls
	// without credentials.
	Next func(c *fiber.Ctx) bool
}

// New returns a middleware that validates the X-Api-Key request header.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		if cfg.ApiKey == "" {
			return c.Next()
		}

		if c.Get("X-Api-Key") != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		return c.Next()
	}
}
