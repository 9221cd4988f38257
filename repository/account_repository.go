package repository

import (
	"context"
	"fmt"

	"ledgerimport/database"
	"ledgerimport/models"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// Create inserts a single account row
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (account_id, client_id)
		VALUES ($1, $2)
	`

	_, err := r.q.Exec(ctx, query, account.AccountID, account.ClientID)
	if err != nil {
		return fmt.Errorf("failed to insert account %d: %w", account.AccountID, err)
	}

	return nil
}

// Count returns the number of stored accounts
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
