package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CtxRequestID is the fiber.Locals key for the per-request correlation id.
const CtxRequestID = "request_id"

// RequestIDMiddleware tags every request with an id and echoes it back in
// the response. A client-supplied X-Request-ID is kept only when it is a
// well-formed UUID.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(fiber.HeaderXRequestID)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		c.Locals(CtxRequestID, reqID)
		c.Set(fiber.HeaderXRequestID, reqID)
		return c.Next()
	}
}
