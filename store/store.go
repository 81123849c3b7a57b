// Package store is the document storage layer shared by every handler.
package store

import (
	"context"
	"errors"
	"fmt"

	"chill-game-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names in the game database.
const (
	GameCollection      = "game"
	UserCollection      = "users"
	WatchlistCollection = "watchlist"
)

var (
	// ErrDuplicate is returned when a write would violate a unique index.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidID is returned for identifiers that are not 24-char hex ObjectIDs.
	ErrInvalidID = errors.New("invalid id")
)

// InsertResult mirrors the acknowledgment MongoDB clients return for insertOne.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult mirrors the acknowledgment for updateOne.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult mirrors the acknowledgment for deleteOne.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is a named set of schema-less documents.
// Filters are equality matches on top-level fields.
type Collection interface {
	Name() string
	InsertOne(ctx context.Context, doc bson.M) (*InsertResult, error)
	// FindOne returns nil and no error when nothing matches.
	FindOne(ctx context.Context, filter bson.M) (bson.M, error)
	Find(ctx context.Context, filter bson.M) ([]bson.M, error)
	// UpdateOne applies set as a $set to the first match. With upsert, a miss
	// inserts a document built from the filter's fields and set.
	UpdateOne(ctx context.Context, filter bson.M, set bson.M, upsert bool) (*UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error)
}

// UniqueIndexer is implemented by collections that can enforce a unique compound key.
type UniqueIndexer interface {
	EnsureUniqueIndex(ctx context.Context, keys ...string) error
}

// ObjectIDFilter builds an `_id` filter from a hex identifier.
func ObjectIDFilter(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return bson.M{"_id": oid}, nil
}

// Database groups the three collections the server works with.
type Database struct {
	Games     Collection
	Users     Collection
	Watchlist Collection

	client *mongo.Client
}

// NewMongoDatabase wires the collections of dbName on an already connected client.
func NewMongoDatabase(client *mongo.Client, dbName string) *Database {
	db := client.Database(dbName)
	return &Database{
		Games:     NewMongoCollection(db.Collection(GameCollection)),
		Users:     NewMongoCollection(db.Collection(UserCollection)),
		Watchlist: NewMongoCollection(db.Collection(WatchlistCollection)),
		client:    client,
	}
}

// NewMemoryDatabase returns a Database held entirely in process memory.
func NewMemoryDatabase() *Database {
	return &Database{
		Games:     NewMemoryCollection(GameCollection),
		Users:     NewMemoryCollection(UserCollection),
		Watchlist: NewMemoryCollection(WatchlistCollection),
	}
}

// EnsureIndexes creates the unique (reviewId, userEmail) index on the watchlist.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	idx, ok := d.Watchlist.(UniqueIndexer)
	if !ok {
		return nil
	}
	if err := idx.EnsureUniqueIndex(ctx, models.WatchlistPairKeys...); err != nil {
		return fmt.Errorf("watchlist index: %w", err)
	}
	return nil
}

// Ping checks that the primary is reachable. Memory databases are always up.
func (d *Database) Ping(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client, if any.
func (d *Database) Close(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}
