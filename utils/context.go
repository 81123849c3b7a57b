package utils

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StoreContext derives a per-request context for a storage call.
func StoreContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
