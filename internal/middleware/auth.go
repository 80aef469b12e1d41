package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// RequireIdentity verifies the bearer token and stores the caller identity
// in the context. Failures end the request with 401 before any handler runs.
func RequireIdentity(verifier *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := verifier.Verify(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			slog.WarnContext(c.UserContext(), "authentication failed", "method", c.Method(), "path", c.Path(), "error", err)
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: unauthenticatedMessage(err),
			})
		}

		auth.SetIdentity(c, id)
		c.SetUserContext(logging.WithSubject(c.UserContext(), id.Subject))
		return c.Next()
	}
}

func unauthenticatedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "no token provided"
	case errors.Is(err, auth.ErrInvalidPayload):
		return "invalid token payload"
	default:
		return "invalid token"
	}
}
