package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"riot-stats-api/logging"
	"riot-stats-api/models"
)

// writeError maps a service error to its HTTP status and JSON body.
func writeError(c *fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already exists"})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg})
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrUnavailable):
		logging.Warn().Err(err).Str("path", c.Path()).Msg("store unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Service unavailable"})
	default:
		logging.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

// ErrorHandler is the fiber fallback for errors returned by handlers and
// middleware, including unknown routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return c.Status(fe.Code).JSON(fiber.Map{"error": "Not found"})
		}
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return writeError(c, err)
}
