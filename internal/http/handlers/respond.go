package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/apperr"
	"github.com/influencetie/backend/internal/http/dto"
)

// respondError maps a service error onto the failure envelope. Typed errors
// keep their status and code; anything else is a 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if appErr := apperr.As(err); appErr != nil {
		return c.Status(appErr.Status).JSON(dto.ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Error:   &dto.ErrorDetail{Code: appErr.Code},
		})
	}
	log.Error("internal error", zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false,
		Message: "Internal server error",
		Error:   &dto.ErrorDetail{Code: apperr.CodeInternalError},
	})
}

func respondValidation(c *fiber.Ctx, errs dto.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false,
		Message: "Invalid request body",
		Error:   &dto.ErrorDetail{Code: apperr.CodeValidationError},
	})
}
