// services/users.go
package services

import (
	"time"

	"chill-game-server/models"
	"chill-game-server/store"
	"chill-game-server/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type UserService struct {
	Users   store.Collection
	Timeout time.Duration
}

func NewUserService(users store.Collection, timeout time.Duration) *UserService {
	return &UserService{Users: users, Timeout: timeout}
}

// CreateUser stores the posted user. Email is not unique; repeated sign-ups
// produce repeated documents.
func (s *UserService) CreateUser(c *fiber.Ctx) error {
	user, err := decodeDocument(c)
	if err != nil {
		return err
	}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Users.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// UpdateSignIn records lastSignInTime on the user with the given email.
// Unknown emails match nothing and nothing is created.
func (s *UserService) UpdateSignIn(c *fiber.Ctx) error {
	body, err := decodeDocument(c)
	if err != nil {
		return err
	}

	filter := bson.M{models.UserEmailField: body[models.UserEmailField]}
	set := bson.M{models.UserLastSignInTimeField: body[models.UserLastSignInTimeField]}

	ctx, cancel := utils.StoreContext(c, s.Timeout)
	defer cancel()

	res, err := s.Users.UpdateOne(ctx, filter, set, false)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
