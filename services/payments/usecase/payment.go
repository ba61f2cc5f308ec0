package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/payments"
)

// SubjectPaymentReconciled is the NATS subject terminal transitions are
// published to
const SubjectPaymentReconciled = "payments.reconciled"

// PaymentUC implements the payments.PaymentUseCase interface
type PaymentUC struct {
	cfg       *models.Config
	gw        payments.PaymentGW
	repo      payments.PaymentRepo
	publisher payments.EventPublisher
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(cfg *models.Config, gw payments.PaymentGW, repo payments.PaymentRepo, publisher payments.EventPublisher) payments.PaymentUseCase {
	return &PaymentUC{
		cfg:       cfg,
		gw:        gw,
		repo:      repo,
		publisher: publisher,
	}
}

// InitiateCheckout creates a provider checkout resource and records the
// transaction as pending
func (uc *PaymentUC) InitiateCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, payments.ErrInvalidAmount
	}
	if req.PaymentMethodType == "" {
		return nil, payments.ErrInvalidPaymentMethod
	}

	session, err := uc.gw.CreateCheckout(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	// A session without a redirect URL is unusable; nothing is persisted
	// because there is nothing the caller could check out to
	if session.RedirectURL == "" || session.ExternalID == "" {
		return nil, payments.ErrMissingRedirectURL
	}

	tx := &models.Transaction{
		ExternalID:        session.ExternalID,
		Amount:            req.Amount,
		BillingName:       req.Billing.Name,
		BillingEmail:      req.Billing.Email,
		BillingPhone:      req.Billing.Phone,
		PaymentMethodType: req.PaymentMethodType,
		Status:            models.TransactionStatusPending,
	}

	if err := uc.repo.UpsertPending(ctx, tx); err != nil {
		// The provider resource now exists without a local record; a
		// later webhook recreates it via the terminal merge-update
		logger.Warn("Checkout created upstream but pending record write failed",
			logger.String("external_id", session.ExternalID),
			logger.Err(err))
		return nil, fmt.Errorf("failed to record pending transaction: %w", err)
	}

	logger.Info("Checkout initiated",
		logger.String("external_id", session.ExternalID),
		logger.Float64("amount", req.Amount),
		logger.String("payment_method_type", req.PaymentMethodType))

	return &models.CheckoutResponse{
		RedirectURL: session.RedirectURL,
		ExternalID:  session.ExternalID,
	}, nil
}

// Reconcile applies a provider webhook event to the transaction record.
// Internal failures are logged, never returned: the webhook handler must
// acknowledge the provider on every reachable path to stop redelivery
// storms.
func (uc *PaymentUC) Reconcile(ctx context.Context, externalID, eventType, eventID string) error {
	var status string
	switch eventType {
	case models.WebhookEventPaymentPaid:
		status = models.TransactionStatusPaid
	case models.WebhookEventPaymentFailed:
		status = models.TransactionStatusFailed
	default:
		// Unknown event types are acknowledged and ignored
		logger.Debug("Ignoring webhook event",
			logger.String("event_type", eventType),
			logger.String("external_id", externalID))
		return nil
	}

	if eventID != "" {
		first, err := uc.repo.MarkEventProcessed(ctx, eventID)
		if err != nil {
			// Dedup is an optimization; the terminal update is
			// idempotent, so proceed
			logger.Warn("Webhook dedup check failed",
				logger.String("event_id", eventID),
				logger.Err(err))
		} else if !first {
			logger.Info("Skipping duplicate webhook event",
				logger.String("event_id", eventID),
				logger.String("external_id", externalID))
			return nil
		}
	}

	if err := uc.repo.ApplyTerminalUpdate(ctx, externalID, status); err != nil {
		logger.ErrorLog("Failed to apply terminal update from webhook",
			logger.String("external_id", externalID),
			logger.String("status", status),
			logger.Err(err))
		return nil
	}

	logger.Info("Transaction reconciled",
		logger.String("external_id", externalID),
		logger.String("status", status))

	uc.publishReconciled(externalID, status, eventType)

	return nil
}

// GetTransaction retrieves a transaction by its external ID
func (uc *PaymentUC) GetTransaction(ctx context.Context, externalID string) (*models.Transaction, error) {
	return uc.repo.GetTransaction(ctx, externalID)
}

func (uc *PaymentUC) publishReconciled(externalID, status, eventType string) {
	if uc.publisher == nil {
		return
	}

	event := models.PaymentEvent{
		ExternalID: externalID,
		Status:     status,
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.ErrorLog("Failed to marshal payment event", logger.Err(err))
		return
	}

	if err := uc.publisher.Publish(SubjectPaymentReconciled, data); err != nil {
		logger.ErrorLog("Failed to publish payment event",
			logger.String("external_id", externalID),
			logger.Err(err))
	}
}
