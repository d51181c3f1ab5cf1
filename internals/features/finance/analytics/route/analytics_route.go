package route

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	analyticsController "danceflow_backend/internals/features/finance/analytics/controller"
	"danceflow_backend/internals/features/finance/analytics/service"
	"danceflow_backend/internals/middlewares/auth"
)

// Admin: /api/a/analytics
func AnalyticsAdminRoutes(r fiber.Router, svc *service.AnalyticsService) {
	ctl := analyticsController.NewAnalyticsController(svc)
	r.Get("/analytics/summary", auth.RequireCapability(constants.CapViewFinancialData), ctl.Summary)
}
