package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danceflow_backend/internals/configs"
	"danceflow_backend/internals/constants"
	paymentService "danceflow_backend/internals/features/finance/payments/service"
	"danceflow_backend/internals/features/notifications/email"
	userService "danceflow_backend/internals/features/users/user/service"
	"danceflow_backend/internals/middlewares"
	"danceflow_backend/internals/middlewares/auth"
	routeDetails "danceflow_backend/internals/route/details"
)

var startTime time.Time

// Deps = semua yang dibutuhkan route; dibangun sekali di main.
type Deps struct {
	DB      *gorm.DB
	Config  *configs.Config
	Mailer  email.Enqueuer
	Limiter fiber.Storage
	Snap    paymentService.SnapCreator
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	cfg := d.Config

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.DB, cfg.AppEnv)

	users := userService.NewUserService(d.DB)
	jwt := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              cfg.JWTSecret,
		AllowCookieFallback: true,
		RoleResolver:        users.ResolveRole,
	})

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", jwt)

	log.Println("[INFO] Setting up ADMIN group (Auth + staff role)...")
	admin := app.Group("/api/a", jwt, auth.OnlyRoles(constants.RoleErrorStaff("the admin area"), constants.StaffRoles...))

	// webhook: tanpa JWT, dijaga signature + limiter bersama
	webhook := app.Group("/api")

	var limiter fiber.Handler
	if d.Limiter != nil {
		limiter = middlewares.WebhookRateLimiter(d.Limiter, cfg.WebhookRateLimit)
	}

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(private, admin, users)
	routeDetails.AuthRoutes(webhook, users, cfg.GoogleClientIDs)

	log.Println("[INFO] Mounting Studio routes...")
	routeDetails.StudioPublicRoutes(public, d.DB, d.Mailer)
	routeDetails.StudioUserRoutes(private, d.DB, d.Mailer)
	routeDetails.StudioAdminRoutes(admin, d.DB, d.Mailer)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceWebhookRoutes(webhook, d.DB, d.Mailer, paymentService.CallbackOptions{
		Secret:            cfg.PaymentWebhookSecret,
		MidtransServerKey: cfg.Midtrans.ServerKey,
		MaxSkew:           cfg.WebhookMaxSkew,
		TxTimeout:         cfg.PaymentTxTimeout,
	}, limiter)
	routeDetails.FinanceUserRoutes(private, d.DB, d.Snap)
	routeDetails.FinanceAdminRoutes(admin, d.DB)
}
