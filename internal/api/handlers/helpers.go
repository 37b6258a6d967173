package handlers

import (
	"strings"
	"time"

	"finboard/internal/models"
	"finboard/internal/service"
	"finboard/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || userID == "" {
		return "", fiber.ErrUnauthorized
	}
	return userID, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, &service.ValidationError{Field: key, Message: "must be a date in YYYY-MM-DD format"}
	}
	if !service.DateInRange(d) {
		return nil, &service.ValidationError{Field: key, Message: "is out of range"}
	}
	return &d, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// failed answers 400 for validation errors and logs anything else as a 500.
func failed(c *fiber.Ctx, logger *zap.Logger, err error, message string) error {
	if ve, ok := service.IsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Error(),
			"field": ve.Field,
		})
	}

	logger.Error(message, zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}
