package details

import (
	"github.com/gofiber/fiber/v2"

	AuthRoute "danceflow_backend/internals/features/users/auth/route"
	authService "danceflow_backend/internals/features/users/auth/service"
	UserRoute "danceflow_backend/internals/features/users/user/route"
	"danceflow_backend/internals/features/users/user/service"
)

func UserRoutes(private, admin fiber.Router, svc *service.UserService) {
	UserRoute.UserRoutes(private, svc)
	UserRoute.UserAdminRoutes(admin, svc)
}

func AuthRoutes(r fiber.Router, users *service.UserService, audience []string) {
	AuthRoute.AuthRoutes(r, authService.NewAuthService(audience, users.ResolveRole))
}
