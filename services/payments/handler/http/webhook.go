package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/internal/utils"
	"github.com/iskolardev/paygate/services/payments"
)

// signatureHeader carries the provider's webhook signature
const signatureHeader = "Paymongo-Signature"

// WebhookHandler handles provider payment notifications
type WebhookHandler struct {
	paymentUC     payments.PaymentUseCase
	webhookSecret string
}

// NewWebhookHandler creates a new webhook handler. An empty secret
// disables signature verification.
func NewWebhookHandler(paymentUC payments.PaymentUseCase, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		paymentUC:     paymentUC,
		webhookSecret: webhookSecret,
	}
}

// HandleWebhook processes a provider payment notification. Every
// structurally valid, authenticated notification is acknowledged with
// 204 regardless of reconciliation outcome so the provider stops
// redelivering.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return utils.BadRequestResponse(c, "Failed to read request body")
	}

	if h.webhookSecret != "" {
		if !h.verifySignature(c.Request().Header.Get(signatureHeader), body) {
			logger.Warn("Webhook signature verification failed",
				logger.String("remote_addr", c.Request().RemoteAddr),
			)
			return utils.UnauthorizedResponse(c, "Invalid webhook signature")
		}
	}

	var envelope models.WebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn("Malformed webhook payload", logger.Err(err))
		return utils.BadRequestResponse(c, "Malformed webhook payload")
	}

	eventType := envelope.EventType()
	externalID := envelope.SubjectID()
	if eventType == "" || externalID == "" {
		logger.Warn("Webhook payload missing event type or resource ID",
			logger.String("event_type", eventType),
			logger.String("external_id", externalID),
		)
		return utils.BadRequestResponse(c, "Webhook payload missing required fields")
	}

	// Reconcile never propagates internal failures
	_ = h.paymentUC.Reconcile(c.Request().Context(), externalID, eventType, envelope.EventID())

	return c.NoContent(http.StatusNoContent)
}

// verifySignature checks the provider signature header against an
// HMAC-SHA256 of "<timestamp>.<raw body>". The header carries a
// timestamp plus test and live signatures; either signature may match.
func (h *WebhookHandler) verifySignature(header string, body []byte) bool {
	if header == "" {
		return false
	}

	var timestamp string
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "te", "li":
			candidates = append(candidates, kv[1])
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return true
		}
	}
	return false
}
