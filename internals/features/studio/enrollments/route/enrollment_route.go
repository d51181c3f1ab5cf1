package route

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	enrollmentController "danceflow_backend/internals/features/studio/enrollments/controller"
	"danceflow_backend/internals/features/studio/enrollments/service"
	"danceflow_backend/internals/middlewares/auth"
)

// User: /api/u/enrollments
func EnrollmentUserRoutes(r fiber.Router, svc *service.EnrollmentService) {
	ctl := enrollmentController.NewEnrollmentController(svc)
	g := r.Group("/enrollments")
	g.Get("/", ctl.ListMine)
	g.Post("/:classId/cancel", ctl.CancelMine)
}

// Staff: /api/a/classes/:id/...
func EnrollmentAdminRoutes(r fiber.Router, svc *service.EnrollmentService) {
	ctl := enrollmentController.NewEnrollmentController(svc)
	guard := auth.RequireCapability(constants.CapManageClasses)
	r.Get("/classes/:id/enrollments", guard, ctl.ListByClass)
	r.Post("/classes/:id/students/:userId/cancel", guard, ctl.CancelByStaff)
}
