package middleware

import (
	"net/http"
	"time"

	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/labstack/echo/v4"
)

// MaintenanceResponse is returned for every request while the gate is enabled
type MaintenanceResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MaintenanceMiddleware short-circuits every request with 503 while
// maintenance mode is enabled. Health endpoints are exempt so probes
// keep working during a maintenance window.
func MaintenanceMiddleware(config models.MaintenanceConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !config.Enabled {
				return next(c)
			}

			path := c.Request().URL.Path
			if path == "/health" || path == "/ping" {
				return next(c)
			}

			return c.JSON(http.StatusServiceUnavailable, MaintenanceResponse{
				Status:    "maintenance",
				Message:   config.Message,
				Timestamp: time.Now().UTC(),
			})
		}
	}
}
