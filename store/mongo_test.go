package store

import (
	"context"
	"os"
	"testing"
	"time"

	"chill-game-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against a real server only when MONGODB_TEST_URI is set.
func newTestMongoDatabase(t *testing.T) *Database {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	name := "chill_game_test_" + time.Now().Format("20060102150405")
	db := NewMongoDatabase(client, name)
	t.Cleanup(func() {
		_ = client.Database(name).Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}

func TestMongoCollectionRoundTrip(t *testing.T) {
	db := newTestMongoDatabase(t)
	ctx := context.Background()
	require.NoError(t, db.Ping(ctx))

	res, err := db.Games.InsertOne(ctx, bson.M{"title": "A", "email": "a@x.io"})
	require.NoError(t, err)

	got, err := db.Games.FindOne(ctx, bson.M{"_id": res.InsertedID})
	require.NoError(t, err)
	raw, err := bson.Marshal(got)
	require.NoError(t, err)
	var game models.Game
	require.NoError(t, bson.Unmarshal(raw, &game))
	assert.Equal(t, res.InsertedID, game.ID)
	assert.Equal(t, "A", game.Title)
	assert.Equal(t, "a@x.io", game.Email)

	up, err := db.Games.UpdateOne(ctx, bson.M{"_id": res.InsertedID}, bson.M{"title": "B"}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), up.ModifiedCount)

	list, err := db.Games.Find(ctx, bson.M{"email": "a@x.io"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	del, err := db.Games.DeleteOne(ctx, bson.M{"_id": res.InsertedID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	got, err = db.Games.FindOne(ctx, bson.M{"_id": res.InsertedID})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMongoWatchlistUniqueIndex(t *testing.T) {
	db := newTestMongoDatabase(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureIndexes(ctx))

	_, err := db.Watchlist.InsertOne(ctx, bson.M{"reviewId": "r", "userEmail": "u"})
	require.NoError(t, err)
	_, err = db.Watchlist.InsertOne(ctx, bson.M{"reviewId": "r", "userEmail": "u"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
