package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danceflow_backend/internals/constants"
	paymentController "danceflow_backend/internals/features/finance/payments/controller"
	"danceflow_backend/internals/features/finance/payments/service"
	"danceflow_backend/internals/middlewares/auth"
)

// Webhook: /api/payments/callback, /api/payments/midtrans/notification
// (tanpa JWT; dijaga signature + rate limiter)
func PaymentWebhookRoutes(r fiber.Router, svc *service.PaymentService, limiter fiber.Handler) {
	ctl := paymentController.NewPaymentCallbackController(svc)
	g := r.Group("/payments")
	if limiter != nil {
		g.Use(limiter)
	}
	g.Post("/callback", ctl.Callback)
	g.Post("/midtrans/notification", ctl.MidtransNotification)
}

// User: /api/u/classes/:id/checkout
func PaymentUserRoutes(r fiber.Router, svc *service.CheckoutService) {
	ctl := paymentController.NewCheckoutController(svc)
	r.Post("/classes/:id/checkout", auth.RequireCapability(constants.CapBookClasses), ctl.Checkout)
}

// Admin: /api/a/payments, /api/a/payment-gateway-events
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentController.NewPaymentAdminController(db)
	guard := auth.RequireCapability(constants.CapViewFinancialData)

	r.Get("/payments", guard, ctl.ListPayments)
	r.Get("/payments/:id", guard, ctl.GetPayment)
	r.Get("/payment-gateway-events", guard, ctl.ListGatewayEvents)
}
