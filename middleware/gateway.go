// middleware/gateway.go
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"riot-stats-api/logging"
)

// ServiceTokenMiddleware checks the shared service token sent as
// "Authorization: Bearer <token>", a raw Authorization value or X-Service-Token.
// With an empty expected token every request passes.
func ServiceTokenMiddleware(expectedToken string) fiber.Handler {
	if expectedToken == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		token := c.Get("X-Service-Token")
		if token == "" {
			authHeader := c.Get("Authorization")
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			logging.Warn().
				Str("request_id", RequestID(c)).
				Str("path", c.Path()).
				Msg("service token missing")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "service token missing",
			})
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			logging.Warn().
				Str("request_id", RequestID(c)).
				Str("path", c.Path()).
				Msg("invalid service token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid service token",
			})
		}

		return c.Next()
	}
}
