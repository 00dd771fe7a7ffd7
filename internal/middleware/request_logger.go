package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// RequestLogger attaches a logger carrying the request id to the request
// context. Must run after requestid.New.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := slog.Default()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			logger = logger.With(slog.String("request_id", rid))
		}
		c.SetUserContext(logging.WithLogger(c.UserContext(), logger))
		return c.Next()
	}
}
