package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount indicates the caller-supplied amount failed validation
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrInvalidPaymentMethod indicates a missing payment method type
	ErrInvalidPaymentMethod = errors.New("payment method type is required")

	// ErrMissingRedirectURL indicates the provider accepted the request
	// but returned no checkout URL to redirect the payer to
	ErrMissingRedirectURL = errors.New("provider response missing checkout URL")

	// ErrTransactionNotFound indicates no record exists for the external ID
	ErrTransactionNotFound = errors.New("transaction not found")
)

// GatewayError represents a rejected or failed upstream provider call
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error (status %d): %s", e.StatusCode, e.Message)
}

// IsGatewayError reports whether err wraps a GatewayError
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
