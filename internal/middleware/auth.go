package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/auth"
	"github.com/influencetie/backend/internal/config"
	"github.com/influencetie/backend/internal/rbac"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "Access token required",
			})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "Invalid authorization format",
			})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "Invalid or expired token",
			})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxEmail, claims.Email)
		c.Locals(CtxRole, claims.Role)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(CtxEmail).(string)
	return email
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

// RequirePermission gates a route on the caller's role.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.HasPermission(GetRole(c), permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false, "message": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}
