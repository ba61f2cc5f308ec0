package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iskolardev/paygate/internal/pkg/middleware"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/payments/handler/http"
)

// Handler coordinates the HTTP handlers for the payment service
type Handler struct {
	paymentHandler *http.PaymentHandler
	webhookHandler *http.WebhookHandler
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	paymentHandler *http.PaymentHandler,
	webhookHandler *http.WebhookHandler,
	cfg *models.Config,
) *Handler {
	return &Handler{
		paymentHandler: paymentHandler,
		webhookHandler: webhookHandler,
		cfg:            cfg,
	}
}

// RegisterRoutes registers all payment routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Provider callbacks authenticate via signature, not JWT
	e.POST("/payments/webhook", h.webhookHandler.HandleWebhook)

	// Protected routes with JWT middleware (user-facing)
	protected := e.Group("/payments", middleware.JWTAuthMiddleware(h.cfg.JWT))
	protected.POST("/:type/checkout", h.paymentHandler.Checkout)
	protected.GET("/transactions/:id", h.paymentHandler.GetTransaction)
}
