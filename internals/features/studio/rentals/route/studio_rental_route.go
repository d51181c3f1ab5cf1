package route

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	rentalController "danceflow_backend/internals/features/studio/rentals/controller"
	"danceflow_backend/internals/features/studio/rentals/service"
	"danceflow_backend/internals/middlewares/auth"
)

// Public: /api/public/rentals
func RentalPublicRoutes(r fiber.Router, svc *service.StudioRentalService) {
	ctl := rentalController.NewStudioRentalController(svc)
	r.Get("/rentals/availability", ctl.Availability)
}

// User: /api/u/rentals
func RentalUserRoutes(r fiber.Router, svc *service.StudioRentalService) {
	ctl := rentalController.NewStudioRentalController(svc)
	g := r.Group("/rentals")
	g.Get("/", ctl.ListMine)
	g.Post("/", ctl.Create)
	g.Post("/:id/cancel", ctl.Cancel)
}

// Admin: /api/a/rentals
func RentalAdminRoutes(r fiber.Router, svc *service.StudioRentalService) {
	ctl := rentalController.NewStudioRentalController(svc)
	g := r.Group("/rentals", auth.OnlyRoles(constants.RoleErrorAdmin("rental approvals"), constants.AdminOnly...))
	g.Get("/", ctl.List)
	g.Post("/:id/confirm", ctl.Confirm)
	g.Post("/:id/cancel", ctl.Cancel)
}
