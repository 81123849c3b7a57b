// utils/mongo.go
package utils

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo opens the process-wide client using the Stable API v1 and
// verifies it with a ping. The caller owns the client.
func ConnectMongo(ctx context.Context, cfg Config) (*mongo.Client, error) {
	uri, err := cfg.DatabaseURI()
	if err != nil {
		return nil, err
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetTimeout(cfg.StoreTimeout)

	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	log.Printf("[MONGO] connecting to %s", cfg.RedactedURI())
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Printf("[MONGO] connected, database=%s", cfg.DBName)
	return client, nil
}
