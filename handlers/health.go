package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const livenessMessage = "Game server is running"

// HealthReporter exposes the last store ping, see workers.StoreHealthWorker.
type HealthReporter interface {
	Status() (healthy bool, lastErr error, checkedAt time.Time)
}

func SetupHealthRoutes(app *fiber.App, health HealthReporter) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(livenessMessage)
	})

	if health == nil {
		return
	}
	app.Get("/healthz", func(c *fiber.Ctx) error {
		healthy, lastErr, checkedAt := health.Status()
		body := fiber.Map{"store": "ok"}
		if !checkedAt.IsZero() {
			body["checkedAt"] = checkedAt.UTC().Format(time.RFC3339)
		}
		if !healthy {
			body["store"] = "unreachable"
			if lastErr != nil {
				body["error"] = lastErr.Error()
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return c.JSON(body)
	})
}
