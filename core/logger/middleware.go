package logger

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware logs every request with its ray ID, outcome and duration.
// Client errors (4xx) are logged at info level so a missing favicon does not
// look like a server fault.
func Middleware(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rl := WithRayID(l, c)

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			rl.Error("Request error", append(fields, zap.Error(err))...)
		case err != nil:
			rl.Info("Request rejected", append(fields, zap.Error(err))...)
		default:
			rl.Info("Request served", fields...)
		}
		return err
	}
}
