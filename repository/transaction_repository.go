package repository

import (
	"context"
	"fmt"

	"ledgerimport/database"
	"ledgerimport/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements the TransactionRepository interface
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create inserts a single cleansed transaction row
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, "timestamp", account_id, amount, "type", medium)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.Exec(ctx, query,
		transaction.TransactionID,
		transaction.Timestamp,
		transaction.AccountID,
		transaction.Amount.String(),
		string(transaction.Type),
		string(transaction.Medium),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %d: %w", transaction.TransactionID, err)
	}

	return nil
}

// GetByID retrieves a transaction by id, returning nil when absent
func (r *TransactionRepository) GetByID(ctx context.Context, transactionID int64) (*models.Transaction, error) {
	query := `
		SELECT transaction_id, "timestamp", account_id, amount::text, "type", medium
		FROM transactions
		WHERE transaction_id = $1
	`

	var (
		transaction models.Transaction
		amount      string
		txType      string
		medium      string
	)
	err := r.q.QueryRow(ctx, query, transactionID).Scan(
		&transaction.TransactionID,
		&transaction.Timestamp,
		&transaction.AccountID,
		&amount,
		&txType,
		&medium,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", transactionID, err)
	}

	transaction.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount for transaction %d: %w", transactionID, err)
	}
	transaction.Type = models.TransactionType(txType)
	transaction.Medium = models.Medium(medium)

	return &transaction, nil
}
