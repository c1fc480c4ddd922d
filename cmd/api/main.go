package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/auth"
	"github.com/influencetie/backend/internal/config"
	"github.com/influencetie/backend/internal/db"
	"github.com/influencetie/backend/internal/events"
	apphttp "github.com/influencetie/backend/internal/http"
	"github.com/influencetie/backend/internal/http/handlers"
	"github.com/influencetie/backend/internal/repositories"
	"github.com/influencetie/backend/internal/services"
)

func main() {
	cfg := config.Load()

	var log *zap.Logger
	if cfg.Development {
		log, _ = zap.NewDevelopment()
	} else {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PGMaxConns, cfg.PGMinConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	messageRepo := repositories.NewMessageRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	mailer := services.NewLogMailer(log)
	google := auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	accountService := services.NewAccountService(userRepo, auditRepo, mailer, google, rdb, cfg, log)
	userService := services.NewUserService(userRepo, auditRepo, cfg, log)
	campaignService := services.NewCampaignService(campaignRepo, applicationRepo, auditRepo, publisher, log)
	messageService := services.NewMessageService(messageRepo, userRepo, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	influencerHandler := handlers.NewInfluencerHandler(userService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	messageHandler := handlers.NewMessageHandler(messageService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "message": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, userHandler, influencerHandler, campaignHandler, messageHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
