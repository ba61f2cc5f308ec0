package models

import (
	"time"
)

// Transaction status values. A transaction is created as pending and
// moves to exactly one terminal status via webhook reconciliation.
const (
	TransactionStatusPending = "pending"
	TransactionStatusPaid    = "paid"
	TransactionStatusFailed  = "failed"
)

// IsTerminalStatus reports whether the given status ends the transaction lifecycle
func IsTerminalStatus(status string) bool {
	return status == TransactionStatusPaid || status == TransactionStatusFailed
}

// Transaction represents a payment transaction record keyed by the
// provider-assigned source/intent identifier
type Transaction struct {
	ExternalID        string     `json:"external_id" db:"external_id"`
	Amount            float64    `json:"amount" db:"amount"`
	BillingName       string     `json:"billing_name,omitempty" db:"billing_name"`
	BillingEmail      string     `json:"billing_email,omitempty" db:"billing_email"`
	BillingPhone      string     `json:"billing_phone,omitempty" db:"billing_phone"`
	PaymentMethodType string     `json:"payment_method_type" db:"payment_method_type"`
	Status            string     `json:"status" db:"status"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	PaidAt            *time.Time `json:"paid_at,omitempty" db:"paid_at"`
	FailedAt          *time.Time `json:"failed_at,omitempty" db:"failed_at"`
}

// BillingInfo carries optional payer details submitted with a checkout request
type BillingInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CheckoutRequest represents an inbound checkout creation request
type CheckoutRequest struct {
	Amount            float64     `json:"amount"`
	Billing           BillingInfo `json:"billing"`
	PaymentMethodType string      `json:"-"`
}

// CheckoutResponse is returned to the caller after a successful checkout creation
type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
	ExternalID  string `json:"externalId"`
}

// PaymentEvent is published to NATS after a terminal reconciliation
type PaymentEvent struct {
	ExternalID string    `json:"external_id"`
	Status     string    `json:"status"`
	EventType  string    `json:"event_type"`
	Timestamp  time.Time `json:"timestamp"`
}
