package payments

import (
	"context"

	"github.com/iskolardev/paygate/internal/pkg/models"
)

// CheckoutSession is the provider resource created for a checkout request
type CheckoutSession struct {
	ExternalID  string
	RedirectURL string
}

// PaymentGW defines the interface for the upstream payment provider
type PaymentGW interface {
	// CreateCheckout asks the provider to set up a payable resource and
	// returns its identifier together with the checkout redirect URL.
	CreateCheckout(ctx context.Context, req *models.CheckoutRequest) (*CheckoutSession, error)
}

// PaymentRepo defines the interface for transaction record storage
type PaymentRepo interface {
	// UpsertPending creates or fully overwrites the record for the
	// transaction's external ID with status pending.
	UpsertPending(ctx context.Context, tx *models.Transaction) error

	// ApplyTerminalUpdate merges a terminal status into the record,
	// creating a skeleton record when none exists yet. The update only
	// lands when the stored status is still pending.
	ApplyTerminalUpdate(ctx context.Context, externalID, status string) error

	// GetTransaction retrieves a transaction by its external ID
	GetTransaction(ctx context.Context, externalID string) (*models.Transaction, error)

	// MarkEventProcessed records a webhook event ID, returning false
	// when the event was already seen.
	MarkEventProcessed(ctx context.Context, eventID string) (bool, error)
}

// EventPublisher defines the interface for publishing lifecycle events
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// PaymentUseCase defines the interface for payment lifecycle operations
type PaymentUseCase interface {
	// InitiateCheckout creates a provider checkout resource and a local
	// pending transaction record.
	InitiateCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error)

	// Reconcile applies a provider webhook event to the transaction
	// record. It never returns an error for internal failures; the
	// webhook handler must be able to acknowledge regardless.
	Reconcile(ctx context.Context, externalID, eventType, eventID string) error

	// GetTransaction retrieves a transaction by its external ID
	GetTransaction(ctx context.Context, externalID string) (*models.Transaction, error)
}
