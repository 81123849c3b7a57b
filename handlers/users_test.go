package handlers

import (
	"context"
	"net/http"
	"testing"

	"chill-game-server/models"
	"chill-game-server/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func userCount(t *testing.T, db *store.Database) int {
	t.Helper()
	all, err := db.Users.Find(context.Background(), bson.M{})
	require.NoError(t, err)
	return len(all)
}

func TestUserCreateAllowsDuplicateEmails(t *testing.T) {
	app, db := newTestApp(t)
	user := bson.M{"email": "a@x.io", "name": "Ann", "createdAt": "2024-01-01T00:00:00Z"}

	for i := 0; i < 2; i++ {
		status, body := doRequest(t, app, http.MethodPost, "/users", user)
		require.Equal(t, http.StatusCreated, status, string(body))
		assert.True(t, decode[insertAck](t, body).Acknowledged)
	}
	assert.Equal(t, 2, userCount(t, db))
}

func TestUserUpdateSignInTime(t *testing.T) {
	app, db := newTestApp(t)
	status, _ := doRequest(t, app, http.MethodPost, "/users", bson.M{"email": "a@x.io", "name": "Ann"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, http.MethodPatch, "/users", bson.M{
		"email":          "a@x.io",
		"lastSignInTime": "Tue, 01 Oct 2024 10:00:00 GMT",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	ack := decode[updateAck](t, body)
	assert.Equal(t, int64(1), ack.MatchedCount)
	assert.Equal(t, int64(1), ack.ModifiedCount)

	stored, err := db.Users.FindOne(context.Background(), bson.M{models.UserEmailField: "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored["name"])

	raw, err := bson.Marshal(stored)
	require.NoError(t, err)
	var user models.User
	require.NoError(t, bson.Unmarshal(raw, &user))
	assert.Equal(t, "a@x.io", user.Email)
	require.NotNil(t, user.LastSignInTime)
	assert.Equal(t, "Tue, 01 Oct 2024 10:00:00 GMT", *user.LastSignInTime)
	assert.False(t, user.ID.IsZero())
}

func TestUserUpdateUnknownEmailCreatesNothing(t *testing.T) {
	app, db := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPatch, "/users", bson.M{
		"email":          "ghost@x.io",
		"lastSignInTime": "now",
	})
	require.Equal(t, http.StatusOK, status)
	ack := decode[updateAck](t, body)
	assert.True(t, ack.Acknowledged)
	assert.Equal(t, int64(0), ack.MatchedCount)
	assert.Equal(t, int64(0), ack.ModifiedCount)
	assert.Equal(t, int64(0), ack.UpsertedCount)
	assert.Equal(t, 0, userCount(t, db))
}
