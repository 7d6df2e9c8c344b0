package loggingmw

import (
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_service/internal/logging"
)

// RequestLogger puts a request-scoped logger into the context and writes one
// "request completed" entry per request. Errors are rendered here so the
// logged status matches the response.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			)
			if id := c.Param("id"); id != "" {
				l = l.With("product_id", id)
			}
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			attrs := []any{
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_in", req.ContentLength,
				"bytes_out", c.Response().Size,
			}
			if err != nil {
				attrs = append(attrs, "reason", reason(err))
			}

			status := c.Response().Status
			switch {
			case status >= 500:
				l.Error("request completed", append(attrs, "error", err)...)
			case status >= 400:
				l.Warn("request completed", attrs...)
			default:
				l.Info("request completed", attrs...)
			}
			return nil
		}
	}
}

func requestID(c echo.Context) string {
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// reason is the message the client saw.
func reason(err error) any {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return err.Error()
}
