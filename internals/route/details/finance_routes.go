package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AnalyticsRoute "danceflow_backend/internals/features/finance/analytics/route"
	analyticsService "danceflow_backend/internals/features/finance/analytics/service"
	PaymentRoute "danceflow_backend/internals/features/finance/payments/route"
	paymentService "danceflow_backend/internals/features/finance/payments/service"
	"danceflow_backend/internals/features/notifications/email"
)

func FinanceWebhookRoutes(r fiber.Router, db *gorm.DB, mailer email.Enqueuer, opts paymentService.CallbackOptions, limiter fiber.Handler) {
	PaymentRoute.PaymentWebhookRoutes(r, paymentService.NewPaymentService(db, mailer, opts), limiter)
}

func FinanceUserRoutes(r fiber.Router, db *gorm.DB, snap paymentService.SnapCreator) {
	PaymentRoute.PaymentUserRoutes(r, paymentService.NewCheckoutService(db, snap))
}

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	PaymentRoute.PaymentAdminRoutes(r, db)
	AnalyticsRoute.AnalyticsAdminRoutes(r, analyticsService.NewAnalyticsService(db))
}
