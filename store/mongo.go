package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is a Collection backed by a MongoDB collection.
type MongoCollection struct {
	coll *mongo.Collection
}

func NewMongoCollection(coll *mongo.Collection) *MongoCollection {
	return &MongoCollection{coll: coll}
}

func (c *MongoCollection) Name() string {
	return c.coll.Name()
}

func (c *MongoCollection) InsertOne(ctx context.Context, doc bson.M) (*InsertResult, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, c.wrap("insert", err)
	}
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (c *MongoCollection) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, c.wrap("find one", err)
	}
	return doc, nil
}

func (c *MongoCollection) Find(ctx context.Context, filter bson.M) ([]bson.M, error) {
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, c.wrap("read cursor", err)
	}
	return docs, nil
}

func (c *MongoCollection) UpdateOne(ctx context.Context, filter bson.M, set bson.M, upsert bool) (*UpdateResult, error) {
	opts := options.Update().SetUpsert(upsert)
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return nil, c.wrap("update", err)
	}
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (c *MongoCollection) DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, c.wrap("delete", err)
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// EnsureUniqueIndex creates an ascending unique compound index over keys.
// Creating an index that already exists with the same keys is a no-op on the server.
func (c *MongoCollection) EnsureUniqueIndex(ctx context.Context, keys ...string) error {
	keyDoc := bson.D{}
	for _, k := range keys {
		keyDoc = append(keyDoc, bson.E{Key: k, Value: 1})
	}
	model := mongo.IndexModel{
		Keys:    keyDoc,
		Options: options.Index().SetUnique(true).SetName(strings.Join(keys, "_") + "_unique"),
	}
	if _, err := c.coll.Indexes().CreateOne(ctx, model); err != nil {
		return c.wrap("create index", err)
	}
	return nil
}

func (c *MongoCollection) wrap(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", op, c.coll.Name(), ErrDuplicate)
	}
	if mongo.IsTimeout(err) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w (%v)", op, c.coll.Name(), context.DeadlineExceeded, err)
	}
	return fmt.Errorf("%s %s: %w", op, c.coll.Name(), err)
}
