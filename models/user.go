package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a signed-up account in the `users` collection, keyed by email for updates.
type User struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email          string             `json:"email" bson:"email"`
	LastSignInTime *string            `json:"lastSignInTime" bson:"lastSignInTime"`
}

const (
	UserEmailField          = "email"
	UserLastSignInTimeField = "lastSignInTime"
)
