package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iskolardev/paygate/internal/pkg/database"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/payments"
	"github.com/jmoiron/sqlx"
)

const eventDedupTTL = 24 * time.Hour

// PaymentRepo implements the payments.PaymentRepo interface on top of
// PostgreSQL, with Redis for webhook event deduplication
type PaymentRepo struct {
	db    *sqlx.DB
	redis *database.RedisClient
}

// NewPaymentRepo creates a new payment repository
func NewPaymentRepo(db *sqlx.DB, redisClient *database.RedisClient) *PaymentRepo {
	return &PaymentRepo{
		db:    db,
		redis: redisClient,
	}
}

// UpsertPending creates or fully overwrites the transaction record with
// status pending and a fresh created_at
func (r *PaymentRepo) UpsertPending(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			external_id, amount, billing_name, billing_email, billing_phone,
			payment_method_type, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			billing_name = EXCLUDED.billing_name,
			billing_email = EXCLUDED.billing_email,
			billing_phone = EXCLUDED.billing_phone,
			payment_method_type = EXCLUDED.payment_method_type,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			paid_at = NULL,
			failed_at = NULL
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ExternalID,
		tx.Amount,
		tx.BillingName,
		tx.BillingEmail,
		tx.BillingPhone,
		tx.PaymentMethodType,
		models.TransactionStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pending transaction: %w", err)
	}

	return nil
}

// ApplyTerminalUpdate merges a terminal status into the record. A
// skeleton row is created when the webhook arrives before the local
// pending write; an existing terminal status is never overwritten.
func (r *PaymentRepo) ApplyTerminalUpdate(ctx context.Context, externalID, status string) error {
	if !models.IsTerminalStatus(status) {
		return fmt.Errorf("status %q is not terminal", status)
	}

	query := `
		INSERT INTO transactions (external_id, status, created_at, paid_at, failed_at)
		VALUES ($1, $2, NOW(),
			CASE WHEN $2 = 'paid' THEN NOW() END,
			CASE WHEN $2 = 'failed' THEN NOW() END)
		ON CONFLICT (external_id) DO UPDATE SET
			status = EXCLUDED.status,
			paid_at = COALESCE(transactions.paid_at, EXCLUDED.paid_at),
			failed_at = COALESCE(transactions.failed_at, EXCLUDED.failed_at)
		WHERE transactions.status = 'pending'
	`

	_, err := r.db.ExecContext(ctx, query, externalID, status)
	if err != nil {
		return fmt.Errorf("failed to apply terminal update: %w", err)
	}

	return nil
}

// transactionRow scans a transactions row. Skeleton rows written by a
// webhook racing ahead of the pending write leave amount, billing and
// payment method NULL, so those columns scan through nullable types.
type transactionRow struct {
	ExternalID        string          `db:"external_id"`
	Amount            sql.NullFloat64 `db:"amount"`
	BillingName       sql.NullString  `db:"billing_name"`
	BillingEmail      sql.NullString  `db:"billing_email"`
	BillingPhone      sql.NullString  `db:"billing_phone"`
	PaymentMethodType sql.NullString  `db:"payment_method_type"`
	Status            string          `db:"status"`
	CreatedAt         time.Time       `db:"created_at"`
	PaidAt            *time.Time      `db:"paid_at"`
	FailedAt          *time.Time      `db:"failed_at"`
}

func (row *transactionRow) toModel() *models.Transaction {
	return &models.Transaction{
		ExternalID:        row.ExternalID,
		Amount:            row.Amount.Float64,
		BillingName:       row.BillingName.String,
		BillingEmail:      row.BillingEmail.String,
		BillingPhone:      row.BillingPhone.String,
		PaymentMethodType: row.PaymentMethodType.String,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
		PaidAt:            row.PaidAt,
		FailedAt:          row.FailedAt,
	}
}

// GetTransaction retrieves a transaction by its external ID
func (r *PaymentRepo) GetTransaction(ctx context.Context, externalID string) (*models.Transaction, error) {
	query := `
		SELECT external_id, amount, billing_name, billing_email, billing_phone,
			payment_method_type, status, created_at, paid_at, failed_at
		FROM transactions
		WHERE external_id = $1
	`

	var row transactionRow
	err := r.db.GetContext(ctx, &row, query, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return row.toModel(), nil
}

// MarkEventProcessed records a webhook event ID in Redis, returning
// false when the event was already seen within the dedup window
func (r *PaymentRepo) MarkEventProcessed(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf("paygate:webhook:event:%s", eventID)

	first, err := r.redis.SetNX(ctx, key, 1, eventDedupTTL)
	if err != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", err)
	}

	return first, nil
}
