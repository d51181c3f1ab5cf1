package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/configs"
	"danceflow_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global. Rate limiter webhook dipasang per-route.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, store fiber.Storage) {
	app.Use(RequestContext(15 * time.Second))
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(cfg.TimeZone))
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	if store != nil {
		app.Use(GlobalRateLimiter(store))
	}
}
