package route

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	classController "danceflow_backend/internals/features/studio/classes/controller"
	"danceflow_backend/internals/features/studio/classes/service"
	"danceflow_backend/internals/middlewares/auth"
)

// Public: /api/public/classes
func ClassPublicRoutes(r fiber.Router, svc *service.ClassService) {
	ctl := classController.NewClassController(svc)
	g := r.Group("/classes")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
}

// Admin/teacher: /api/a/classes
func ClassAdminRoutes(r fiber.Router, svc *service.ClassService) {
	ctl := classController.NewClassController(svc)
	g := r.Group("/classes", auth.RequireCapability(constants.CapManageClasses))
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByIDStaff)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/remind", ctl.SendReminder)
}
