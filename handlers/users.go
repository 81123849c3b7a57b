package handlers

import (
	"chill-game-server/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	app.Post("/users", userService.CreateUser)
	app.Patch("/users", userService.UpdateSignIn)
}
