package services

import (
	"time"

	"chill-game-server/models"
	"chill-game-server/store"
	"chill-game-server/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type GameService struct {
	Games   store.Collection
	Timeout time.Duration
}

func NewGameService(games store.Collection, timeout time.Duration) *GameService {
	return &GameService{Games: games, Timeout: timeout}
}

// GetGameByID returns the review document, or null when it does not exist.
func (s *GameService) GetGameByID(c *fiber.Ctx) error {
	filter, err := store.ObjectIDFilter(c.Params("id"))
	if err != nil {
		return err
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	game, err := s.Games.FindOne(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(game)
}

// CreateGame stores the posted review as-is.
func (s *GameService) CreateGame(c *fiber.Ctx) error {
	game, err := decodeDocument(c)
	if err != nil {
		return err
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Games.InsertOne(ctx, game)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListGames returns every review, or only the ones owned by ?email=.
func (s *GameService) ListGames(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter[models.GameEmailField] = email
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	games, err := s.Games.Find(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(games)
}

// UpdateGame overwrites the editable review fields, creating the document if
// the id is unknown. Fields missing from the body are set to null.
func (s *GameService) UpdateGame(c *fiber.Ctx) error {
	filter, err := store.ObjectIDFilter(c.Params("id"))
	if err != nil {
		return err
	}
	body, err := decodeDocument(c)
	if err != nil {
		return err
	}

	set := bson.M{}
	for _, field := range models.GameUpdateFields {
		set[field] = body[field]
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Games.UpdateOne(ctx, filter, set, true)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// DeleteGame removes the review. Deleting an unknown id reports deletedCount 0.
func (s *GameService) DeleteGame(c *fiber.Ctx) error {
	filter, err := store.ObjectIDFilter(c.Params("id"))
	if err != nil {
		return err
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Games.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
