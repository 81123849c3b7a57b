package services

import (
	"context"
	"errors"
	"log"
	"time"

	"chill-game-server/models"
	"chill-game-server/store"
	"chill-game-server/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type WatchlistService struct {
	Watchlist store.Collection
	Timeout   time.Duration
}

func NewWatchlistService(watchlist store.Collection, timeout time.Duration) *WatchlistService {
	return &WatchlistService{Watchlist: watchlist, Timeout: timeout}
}

// AddToWatchlist inserts the entry and relies on the unique (reviewId, userEmail)
// index to reject repeats, so concurrent adds of the same pair store one entry.
func (s *WatchlistService) AddToWatchlist(c *fiber.Ctx) error {
	entry, err := decodeDocument(c)
	if err != nil {
		return err
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Watchlist.InsertOne(ctx, entry)
	if errors.Is(err, store.ErrDuplicate) {
		// The clash may be on _id rather than the pair; only a stored pair means "already exists".
		exists, findErr := s.pairExists(ctx, entry)
		if findErr != nil {
			return findErr
		}
		if !exists {
			return err
		}
		log.Printf("[WATCHLIST] already present review=%v user=%v",
			entry[models.WatchlistReviewIDField], entry[models.WatchlistUserEmailField])
		return c.JSON(fiber.Map{"alreadyExists": true})
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (s *WatchlistService) pairExists(ctx context.Context, entry bson.M) (bool, error) {
	filter := bson.M{}
	for _, key := range models.WatchlistPairKeys {
		filter[key] = entry[key]
	}
	found, err := s.Watchlist.FindOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return found != nil, nil
}

// ListWatchlist returns all entries, or those of ?email= when given.
func (s *WatchlistService) ListWatchlist(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter[models.WatchlistUserEmailField] = email
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	entries, err := s.Watchlist.Find(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *WatchlistService) RemoveFromWatchlist(c *fiber.Ctx) error {
	filter, err := store.ObjectIDFilter(c.Params("id"))
	if err != nil {
		return err
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Watchlist.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
