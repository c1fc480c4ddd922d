package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/http/dto"
	"github.com/influencetie/backend/internal/services"
)

type AuthHandler struct {
	accounts *services.AccountService
	log      *zap.Logger
}

func NewAuthHandler(accounts *services.AccountService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	user, err := h.accounts.Register(c.Context(), services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		InstagramHandle: req.InstagramHandle,
		Categories:      req.Categories,
		CompanyName:     req.CompanyName,
		Industry:        req.Industry,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	token, err := h.accounts.MintToken(user)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK(
		"Registration successful. Please verify your email.",
		dto.RegisterData{
			Token:                     token,
			User:                      user.Summary(),
			RequiresEmailVerification: !user.IsEmailVerified,
		},
	))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	token, user, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.OK("Login successful", dto.AuthData{
		Token: token,
		User:  user.Summary(),
	}))
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	user, err := h.accounts.VerifyOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return respondError(c, h.log, err)
	}

	token, err := h.accounts.MintToken(user)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.OK("Email verified successfully", dto.AuthData{
		Token: token,
		User:  user.Summary(),
	}))
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	if err := h.accounts.ResendOTP(c.Context(), req.Email); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Verification code sent", nil))
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	if err := h.accounts.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Password reset code sent", nil))
}

func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	if err := h.accounts.ConfirmPasswordReset(c.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Password reset successfully", nil))
}

// GoogleAuth redirects the browser to the Google consent screen.
func (h *AuthHandler) GoogleAuth(c *fiber.Ctx) error {
	url, err := h.accounts.GoogleAuthURL(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// GoogleCallback finishes the OAuth flow and hands the token to the frontend.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		return respondValidation(c, dto.Errors{"code": {"state and code are required"}})
	}

	token, user, err := h.accounts.GoogleCallback(c.Context(), state, code)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Redirect(h.accounts.FrontendCallbackURL(token, user), fiber.StatusTemporaryRedirect)
}
