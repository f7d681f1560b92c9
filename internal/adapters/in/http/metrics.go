package http

import (
	"errors"
	"strconv"
	"time"

	"tracking/internal/metrics"

	"github.com/labstack/echo/v4"
)

// RecordMetrics counts requests and observes latency per route template,
// so /shipments/:shipmentId is one series regardless of the id.
func RecordMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}

			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}

			method := ctx.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
