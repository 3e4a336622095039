package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biztime-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog. Los errores de la cadena se resuelven
// aquí mismo con el ErrorHandler de la app para que el status registrado sea el real.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return nil
	}
}
