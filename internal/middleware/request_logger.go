package middleware

import (
	"time"

	"barber-pos-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a request-scoped logger to the user context and
// logs one line per request. It expects requestid to run first.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

		err := c.Next()
		if err != nil {
			// Let the app error handler write the response before we read the status
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		evt := reqLog.Info()
		switch {
		case status >= 500:
			evt = reqLog.Error()
		case status >= 400:
			evt = reqLog.Warn()
		}
		evt.Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("HTTP request")
		return nil
	}
}
