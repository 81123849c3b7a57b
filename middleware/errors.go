// middleware/errors.go
package middleware

import (
	"context"
	"errors"
	"log"

	"chill-game-server/store"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber.Config.ErrorHandler. Every failure is
// answered as {"error": "..."} with a status derived from the error kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.Is(err, store.ErrInvalidID):
		code = fiber.StatusBadRequest
		message = "invalid id"
	case errors.Is(err, store.ErrDuplicate):
		code = fiber.StatusConflict
		message = "document already exists"
	case errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusGatewayTimeout
		message = "database timed out"
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ [HTTP] %s %s request=%v: %v", c.Method(), c.Path(), c.Locals(RequestIDKey), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
