package handlers

import (
	"chill-game-server/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWatchlistRoutes(app *fiber.App, watchlistService *services.WatchlistService) {
	app.Get("/watchlist", watchlistService.ListWatchlist)
	app.Post("/watchlist", watchlistService.AddToWatchlist)
	app.Delete("/watchlist/:id", watchlistService.RemoveFromWatchlist)
}
