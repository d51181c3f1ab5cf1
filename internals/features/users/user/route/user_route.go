package route

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	userController "danceflow_backend/internals/features/users/user/controller"
	"danceflow_backend/internals/features/users/user/service"
	"danceflow_backend/internals/middlewares/auth"
)

func UserRoutes(r fiber.Router, svc *service.UserService) {
	ctl := userController.NewUserController(svc)
	r.Get("/me", ctl.GetMe)
}

func UserAdminRoutes(r fiber.Router, svc *service.UserService) {
	ctl := userController.NewUserController(svc)
	r.Patch("/users/:id/role", auth.RequireCapability(constants.CapManageUsers), ctl.UpdateRole)
}
