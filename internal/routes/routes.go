package routes

import (
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	verifier *auth.Verifier,
	messageHandler *handlers.MessageHandler,
	healthHandler *handlers.HealthHandler,
	metricsHandler http.Handler,
) {
	app.Get("/", healthHandler.Root)
	if metricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))
	}

	api := app.Group(cfg.APIPrefix)

	// General API rate limiter per IP
	api.Use(perIPLimiter(cfg.RateLimitPerMinute))

	api.Get("/health", healthHandler.Check)

	// Generation calls the LLM, so it gets a stricter limit
	api.Post("/generate",
		middleware.RequireIdentity(verifier),
		perIPLimiter(cfg.GenerateLimitPerMinute),
		messageHandler.Generate,
	)
	api.Get("/history", middleware.RequireIdentity(verifier), messageHandler.History)
}

func perIPLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
