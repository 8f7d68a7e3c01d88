package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Locals y cabecera del identificador de petición.
const (
	LocalRequestID  = "request_id"
	LocalLogger     = "logger"
	HeaderRequestID = "X-Request-ID"
)

// RequestLogger asigna un request id (X-Request-ID o uuid nuevo), deja un logger con ese id
// en c.Locals y registra método, ruta, status y latencia de cada petición.
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)

		l := base.With().Str("request_id", reqID).Logger()
		c.Locals(LocalRequestID, reqID)
		c.Locals(LocalLogger, &l)

		err := c.Next()
		if err != nil {
			// El error handler de fiber aún no corrió; el status final lo escribe él.
			if ferr := c.App().ErrorHandler(c, err); ferr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		ev := l.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if id := GetEmployeeID(c); id != 0 {
			ev.Int64("employee_id", id)
		}
		ev.Msg("request")
		return nil
	}
}

// requestLog devuelve el logger de la petición o el global si RequestLogger no está montado.
func requestLog(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(LocalLogger).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &zlog.Logger
}
