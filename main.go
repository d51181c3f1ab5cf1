package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"golang.org/x/sync/errgroup"

	"danceflow_backend/internals/configs"
	database "danceflow_backend/internals/databases"
	paymentService "danceflow_backend/internals/features/finance/payments/service"
	"danceflow_backend/internals/features/notifications/email"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
	middlewares "danceflow_backend/internals/middlewares"
	routes "danceflow_backend/internals/route"
)

// serverConfig: X-Forwarded-For hanya dipercaya dari proxy di TRUSTED_PROXIES,
// selain itu c.IP() = alamat koneksi (dipakai rate limiter).
func serverConfig(cfg *configs.Config) fiber.Config {
	fc := fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.FiberErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	}
	if len(cfg.TrustedProxies) > 0 {
		fc.ProxyHeader = fiber.HeaderXForwardedFor
		fc.EnableTrustedProxyCheck = true
		fc.TrustedProxies = cfg.TrustedProxies
	}
	return fc
}

func main() {
	cfg := configs.LoadEnv()

	applog.Init(cfg.RollbarToken, cfg.AppEnv, cfg.BuildVersion)
	defer applog.Close()

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	database.TunePool(db)
	database.WarmUpQueries(db)
	defer database.Close(db)

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB.URL()); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	// ✉️ email queue
	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		log.Fatalf("❌ email: %v", err)
	}
	mailer := email.NewQueue(sender, email.QueueOptions{
		RatePerSecond: cfg.Email.RatePerSecond,
		MaxRetries:    cfg.Email.MaxRetries,
		RetryDelay:    cfg.Email.RetryDelay,
		Size:          cfg.Email.QueueSize,
	})

	// ✅ MIDTRANS (nil kalau server key kosong → checkout 503)
	snapClient := paymentService.InitMidtrans(cfg.Midtrans)

	app := fiber.New(serverConfig(cfg))

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	limiterStore := middlewares.NewGormStorage(db)
	middlewares.SetupMiddlewares(app, cfg, limiterStore)

	routes.SetupRoutes(app, routes.Deps{
		DB:      db,
		Config:  cfg,
		Mailer:  mailer,
		Limiter: limiterStore,
		Snap:    snapClient,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mailer.Run(gctx) })
	g.Go(func() error { return middlewares.RunRateLimitCleanup(gctx, limiterStore, 10*time.Minute) })
	g.Go(func() error {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[INFO] shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		applog.Error("server stopped with error", err)
	}
	if m := mailer.Metrics(); m.Pending > 0 {
		applog.Warn("email queue not drained on shutdown", "pending", m.Pending)
	}
}
