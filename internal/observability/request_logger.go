package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs each handled request and records HTTP metrics. It must
// run outside the error-mapping middleware so it observes the final status.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		routePath := c.Route().Path
		if routePath == "" {
			routePath = c.Path()
		}

		if routePath != "/metrics" {
			HTTPRequestsTotal.WithLabelValues(c.Method(), routePath, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(c.Method(), routePath).Observe(duration.Seconds())
		}

		logger.Info("request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
