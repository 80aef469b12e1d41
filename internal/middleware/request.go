package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// RequestContext copies the request id set by the requestid middleware into
// the user context so service logs carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// Metrics records the final status code of every response.
func Metrics(rec metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		rec.RecordHTTPStatus(status)
		return err
	}
}

func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	}
}
