package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// RequestLogging logs one line per completed request with the route,
// status, elapsed time and the authenticated caller when present.
func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if m.logger != nil {
				fields := logrus.Fields{
					"method":  c.Request().Method,
					"path":    c.Path(),
					"status":  c.Response().Status,
					"elapsed": time.Since(start).String(),
				}
				if id, ok := c.Get("user_id").(string); ok && id != "" {
					fields["user_id"] = id
				}
				m.logger.WithFields(fields).Debug("request handled")
			}
			return err
		}
	}
}
