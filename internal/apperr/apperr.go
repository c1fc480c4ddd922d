// Package apperr defines the typed errors surfaced by services. Each error
// carries a machine-readable code and the HTTP status the boundary should
// answer with; anything that is not an *Error maps to a generic 500.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error codes
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeConflict               = "CONFLICT"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists     = "EMAIL_ALREADY_EXISTS"
	CodePhoneAlreadyExists     = "PHONE_ALREADY_EXISTS"
	CodeInstagramAlreadyExists = "INSTAGRAM_ALREADY_EXISTS"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeInvalidOTP             = "INVALID_OTP"
	CodeOTPExpired             = "OTP_EXPIRED"
)

type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// As unwraps err into an *Error, or nil if it is not one.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Prebuilt errors for the common cases. Login failures share one message for
// unknown email and wrong password so callers cannot enumerate accounts.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", fiber.StatusUnauthorized)
	ErrEmailExists        = New(CodeEmailAlreadyExists, "Email already exists", fiber.StatusConflict)
	ErrPhoneExists        = New(CodePhoneAlreadyExists, "Phone number already exists", fiber.StatusConflict)
	ErrInstagramExists    = New(CodeInstagramAlreadyExists, "Instagram handle already exists", fiber.StatusConflict)
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", fiber.StatusNotFound)
	ErrInvalidOTP         = New(CodeInvalidOTP, "Invalid or expired OTP", fiber.StatusBadRequest)
	ErrOTPExpired         = New(CodeOTPExpired, "OTP has expired", fiber.StatusBadRequest)
)

func BadRequest(message string) *Error {
	return New(CodeValidationError, message, fiber.StatusBadRequest)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message, fiber.StatusUnauthorized)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message, fiber.StatusForbidden)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message, fiber.StatusNotFound)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message, fiber.StatusConflict)
}
