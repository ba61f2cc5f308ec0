package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMaintenanceRequest(t *testing.T, cfg models.MaintenanceConfig, path string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(MaintenanceMiddleware(cfg))
	e.GET("/*", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMaintenanceMiddleware_Disabled(t *testing.T) {
	cfg := models.MaintenanceConfig{Enabled: false}

	rec := runMaintenanceRequest(t, cfg, "/payments/gcash/checkout")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMaintenanceMiddleware_Enabled(t *testing.T) {
	cfg := models.MaintenanceConfig{
		Enabled: true,
		Message: "down for scheduled maintenance",
	}

	rec := runMaintenanceRequest(t, cfg, "/payments/gcash/checkout")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp MaintenanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "maintenance", resp.Status)
	assert.Equal(t, "down for scheduled maintenance", resp.Message)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestMaintenanceMiddleware_HealthExempt(t *testing.T) {
	cfg := models.MaintenanceConfig{Enabled: true, Message: "down"}

	assert.Equal(t, http.StatusOK, runMaintenanceRequest(t, cfg, "/health").Code)
	assert.Equal(t, http.StatusOK, runMaintenanceRequest(t, cfg, "/ping").Code)
}
