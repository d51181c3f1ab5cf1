package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "danceflow_backend/internals/helpers"
)

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter(store fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Storage:    store,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "global:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Too many requests, try again later.")
		},
	})
}

// WebhookRateLimiter membatasi callback payment per IP; counter disimpan di store bersama.
func WebhookRateLimiter(store fiber.Storage, max int) fiber.Handler {
	if max <= 0 {
		max = 60
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		Storage:    store,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "webhook:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonErrorCode(c, fiber.StatusTooManyRequests, "payment/rate-limited",
				"Too many callback requests.", nil)
		},
	})
}
