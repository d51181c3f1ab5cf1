package route

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	attendanceController "danceflow_backend/internals/features/studio/attendance/controller"
	"danceflow_backend/internals/features/studio/attendance/service"
	"danceflow_backend/internals/middlewares/auth"
)

// Staff: /api/a/classes/:id/attendance
func AttendanceAdminRoutes(r fiber.Router, svc *service.AttendanceService) {
	ctl := attendanceController.NewAttendanceController(svc)
	g := r.Group("/classes/:id/attendance", auth.RequireCapability(constants.CapManageClasses))
	g.Get("/", ctl.List)
	g.Get("/report", ctl.Report)
	g.Get("/:date", ctl.Get)
	g.Put("/:date", ctl.Mark)
}

// User: /api/u/progress
func AttendanceUserRoutes(r fiber.Router, svc *service.AttendanceService) {
	ctl := attendanceController.NewAttendanceController(svc)
	r.Get("/progress", ctl.MyProgress)
}
