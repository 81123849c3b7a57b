// handlers/app.go
package handlers

import (
	"time"

	"chill-game-server/middleware"
	"chill-game-server/services"
	"chill-game-server/store"

	"github.com/gofiber/fiber/v2"
)

// AppConfig carries the HTTP-level settings NewApp needs.
type AppConfig struct {
	AllowedOrigins string
	StoreTimeout   time.Duration
	BodyLimit      int
	AccessLog      bool
}

// NewApp builds the fiber app with middleware and every route wired to db.
// health may be nil, in which case /healthz is not registered.
func NewApp(db *store.Database, health HealthReporter, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chill-game-server",
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	if cfg.AccessLog {
		app.Use(middleware.AccessLog())
	}
	app.Use(middleware.CORS(cfg.AllowedOrigins))

	SetupHealthRoutes(app, health)
	SetupGameRoutes(app, services.NewGameService(db.Games, cfg.StoreTimeout))
	SetupUserRoutes(app, services.NewUserService(db.Users, cfg.StoreTimeout))
	SetupWatchlistRoutes(app, services.NewWatchlistService(db.Watchlist, cfg.StoreTimeout))

	return app
}
