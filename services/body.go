package services

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// decodeDocument reads the request body as a free-form JSON object.
// An empty body decodes to an empty document. Integral numbers are kept as
// integers (int32 when they fit) so stored documents look like what the client sent.
func decodeDocument(c *fiber.Ctx) (bson.M, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return bson.M{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	doc := make(bson.M, len(raw))
	for k, v := range raw {
		doc[k] = normalizeValue(v)
	}
	return doc, nil
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return int32(i)
			}
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]interface{}:
		out := make(bson.M, len(val))
		for k, inner := range val {
			out[k] = normalizeValue(inner)
		}
		return out
	case []interface{}:
		out := make(bson.A, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	}
	return v
}
