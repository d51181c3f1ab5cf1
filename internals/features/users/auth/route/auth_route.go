package route

import (
	"github.com/gofiber/fiber/v2"

	authController "danceflow_backend/internals/features/users/auth/controller"
	"danceflow_backend/internals/features/users/auth/service"
)

// Public: /api/auth/verify-token (tanpa JWT; token ada di body, dibatasi global limiter)
func AuthRoutes(r fiber.Router, svc *service.AuthService) {
	ctl := authController.NewAuthController(svc)
	r.Post("/auth/verify-token", ctl.VerifyToken)
}
