package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error into its HTTP response. Details of
// server errors stay in the logs.
func respondError(c *fiber.Ctx, err error) error {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: verr.Fields,
		})
	}

	if errors.Is(err, auth.ErrUnauthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "invalid token",
		})
	}

	message := "Internal server error"
	if errors.Is(err, services.ErrGeneration) {
		message = "Failed to generate message"
	}

	slog.ErrorContext(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
