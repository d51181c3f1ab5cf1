package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"danceflow_backend/internals/helpers/applog"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			applog.Error("panic recovered", fmt.Errorf("%v", e),
				"method", c.Method(), "path", c.Path(), "request_id", c.Locals(LocRequestID))
		},
	})
}
