package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WatchlistEntry links a user to a game review. Both references are weak:
// deleting the game or the user leaves the entry in place.
type WatchlistEntry struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ReviewID  string             `json:"reviewId" bson:"reviewId"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
}

const (
	WatchlistReviewIDField  = "reviewId"
	WatchlistUserEmailField = "userEmail"
)

// WatchlistPairKeys is the unique key of the watchlist collection.
var WatchlistPairKeys = []string{WatchlistReviewIDField, WatchlistUserEmailField}
