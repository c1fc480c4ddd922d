package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/config"
	"github.com/influencetie/backend/internal/http/handlers"
	"github.com/influencetie/backend/internal/middleware"
	"github.com/influencetie/backend/internal/rbac"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	influencerHandler *handlers.InfluencerHandler,
	campaignHandler *handlers.CampaignHandler,
	messageHandler *handlers.MessageHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public, rate-limited)
	authGroup := api.Group("/auth", middleware.RateLimitMiddleware(rdb, 30, time.Minute))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/otp/verify", authHandler.VerifyOTP)
	authGroup.Post("/otp/resend", authHandler.ResendOTP)
	authGroup.Post("/password/reset/request", authHandler.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", authHandler.ConfirmPasswordReset)
	authGroup.Get("/google", authHandler.GoogleAuth)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)

	// Meta (public)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/categories", metaHandler.Categories)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Profile
	protected.Get("/users/me", userHandler.GetMe)
	protected.Put("/users/me", userHandler.UpdateMe)
	protected.Delete("/users/me", userHandler.DeleteMe)
	protected.Post("/users/change-password", userHandler.ChangePassword)
	protected.Get("/users/stats", userHandler.GetStats)

	// Influencer directory
	protected.Get("/influencers",
		middleware.RequirePermission(rbac.PermBrowseInfluencers), influencerHandler.List)

	// Campaigns
	protected.Post("/campaigns", campaignHandler.Create)
	protected.Get("/campaigns", campaignHandler.List)
	protected.Get("/campaigns/my-applications", campaignHandler.ListMyApplications)
	protected.Get("/campaigns/:id", campaignHandler.Get)
	protected.Put("/campaigns/:id", campaignHandler.Update)
	protected.Delete("/campaigns/:id", campaignHandler.Delete)
	protected.Post("/campaigns/:id/apply", campaignHandler.Apply)
	protected.Get("/campaigns/:id/applications", campaignHandler.ListApplications)
	protected.Put("/campaigns/:campaignId/applications/:applicationId", campaignHandler.DecideApplication)

	// Messaging
	protected.Get("/messages/threads", messageHandler.ListThreads)
	protected.Get("/messages/threads/:id", messageHandler.GetThreadMessages)
	protected.Post("/messages", messageHandler.Send)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
