package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iskolardev/paygate/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler *http.AuthHandler
}

// NewHandler creates and initializes all handlers
func NewHandler(authHandler *http.AuthHandler) *Handler {
	return &Handler{
		authHandler: authHandler,
	}
}

// RegisterRoutes registers all auth routes. Both endpoints authenticate
// via the bearer token itself, so neither sits behind the JWT middleware.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	authGroup := e.Group("/auth")
	authGroup.POST("/login", h.authHandler.Login)
	authGroup.POST("/verify", h.authHandler.Verify)
}
