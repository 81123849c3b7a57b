package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chill-game-server/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type insertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type updateAck struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type deleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func newTestApp(t *testing.T) (*fiber.App, *store.Database) {
	t.Helper()
	db := store.NewMemoryDatabase()
	require.NoError(t, db.EnsureIndexes(context.Background()))
	return NewApp(db, nil, AppConfig{AllowedOrigins: "*", StoreTimeout: time.Second}), db
}

// doRequest sends body as JSON (a string is sent raw) and returns status and body.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createGame(t *testing.T, app *fiber.App, game bson.M) string {
	t.Helper()
	status, body := doRequest(t, app, http.MethodPost, "/game", game)
	require.Equal(t, http.StatusCreated, status, string(body))
	ack := decode[insertAck](t, body)
	require.True(t, ack.Acknowledged)
	require.Len(t, ack.InsertedID, 24)
	return ack.InsertedID
}
