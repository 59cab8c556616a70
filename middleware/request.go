// middleware/request.go
package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"riot-stats-api/logging"
	"riot-stats-api/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"
	localRequestID  = "request_id"
	unmatchedRoute  = "unmatched"
)

// RequestContextMiddleware tags every request with an id (reusing an
// incoming X-Request-ID), writes one access log line and records the
// HTTP metrics under the matched route pattern.
func RequestContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)

		route := ""
		if err := c.Next(); err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
				route = unmatchedRoute
			}
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		if route == "" {
			route = c.Route().Path
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		metrics.RecordHTTP(route, c.Method(), status, elapsed)

		ev := logging.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = logging.Error()
		case status >= fiber.StatusBadRequest:
			ev = logging.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}

// RequestID returns the id assigned by RequestContextMiddleware, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}
