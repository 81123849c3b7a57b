// handlers/game.go
package handlers

import (
	"chill-game-server/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService) {
	app.Get("/game", gameService.ListGames) // ?email= for "my reviews"
	app.Post("/game", gameService.CreateGame)
	app.Get("/game/:id", gameService.GetGameByID)
	app.Put("/game/:id", gameService.UpdateGame)
	app.Delete("/game/:id", gameService.DeleteGame)
}
