// models/game.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Game is a review document in the `game` collection.
// Documents are stored as sent by the client, so this only names the known fields.
type Game struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Rating      float64            `json:"rating" bson:"rating"`
	Year        int                `json:"year" bson:"year"`
	Genre       string             `json:"genre" bson:"genre"`
	Email       string             `json:"email" bson:"email"` // owning reviewer
}

const GameEmailField = "email"

// GameUpdateFields are the fields a PUT /game/:id overwrites. Anything else on the
// stored document is left alone.
var GameUpdateFields = []string{
	"thumbnail",
	"title",
	"description",
	"rating",
	"year",
	"genre",
}
