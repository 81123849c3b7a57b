package services

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// decodeVia runs decodeDocument inside a real fiber request.
func decodeVia(t *testing.T, body string) (bson.M, error) {
	t.Helper()
	var (
		doc    bson.M
		decErr error
	)
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		doc, decErr = decodeDocument(c)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest("POST", "/", strings.NewReader(body)), -1)
	require.NoError(t, err)
	resp.Body.Close()
	return doc, decErr
}

func TestDecodeDocumentNumbers(t *testing.T) {
	doc, err := decodeVia(t, `{"year":2000,"rating":4.5,"big":9007199254740993,"neg":-3,"list":[1,2.5],"obj":{"n":7}}`)
	require.NoError(t, err)

	assert.Equal(t, int32(2000), doc["year"])
	assert.Equal(t, 4.5, doc["rating"])
	assert.Equal(t, int64(9007199254740993), doc["big"])
	assert.Equal(t, int32(-3), doc["neg"])
	assert.Equal(t, bson.A{int32(1), 2.5}, doc["list"])
	assert.Equal(t, bson.M{"n": int32(7)}, doc["obj"])
}

func TestDecodeDocumentEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   ", "null"} {
		doc, err := decodeVia(t, body)
		require.NoError(t, err, body)
		assert.Empty(t, doc)
		assert.NotNil(t, doc)
	}
}

func TestDecodeDocumentRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"text"`, `{"a":`} {
		_, err := decodeVia(t, body)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe, body)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	}
}
