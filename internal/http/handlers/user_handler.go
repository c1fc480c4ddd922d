package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/http/dto"
	"github.com/influencetie/backend/internal/middleware"
	"github.com/influencetie/backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUserHandler(users *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.users.GetProfile(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Profile retrieved", fiber.Map{"user": user}))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	user, err := h.users.UpdateProfile(c.Context(), middleware.GetUserID(c), req.Fields())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Profile updated", fiber.Map{"user": user}))
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	if err := h.users.DeleteAccount(c.Context(), middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Account deleted", nil))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	err := h.users.ChangePassword(c.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Password changed", nil))
}

func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.users.GetStats(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Stats retrieved", fiber.Map{"stats": stats}))
}
