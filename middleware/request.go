// middleware/request.go
package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDKey is the c.Locals key holding the request id.
const RequestIDKey = "requestid"

// RequestID echoes an incoming X-Request-ID or assigns a UUID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	})
}

// AccessLog writes one line per request, tagged with its request id.
func AccessLog() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} [HTTP] ${locals:" + RequestIDKey + "} ${status} ${latency} ${method} ${path}\n",
		TimeFormat: "2006/01/02 15:04:05",
		Output:     os.Stdout,
	})
}

// Recover turns handler panics into 500 responses instead of dropping the connection.
func Recover() fiber.Handler {
	return recover.New(recover.Config{EnableStackTrace: true})
}
