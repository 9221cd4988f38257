package repository

import (
	"context"
	"fmt"

	"ledgerimport/database"
	"ledgerimport/models"

	"github.com/jackc/pgx/v5"
)

// ClientRepository implements the ClientRepository interface
type ClientRepository struct {
	q queryable
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *database.DB) *ClientRepository {
	return &ClientRepository{q: db.Pool}
}

// newClientRepositoryWithTx creates a new client repository with a transaction
func newClientRepositoryWithTx(tx queryable) *ClientRepository {
	return &ClientRepository{q: tx}
}

// Create inserts a single client row. A nil birth date is stored as NULL.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (client_id, client_name, client_email, client_birth_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.Exec(ctx, query, client.ClientID, client.Name, client.Email, client.BirthDate)
	if err != nil {
		return fmt.Errorf("failed to insert client %s: %w", client.ClientID, err)
	}

	return nil
}

// GetByID retrieves a client by id, returning nil when absent
func (r *ClientRepository) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	query := `
		SELECT client_id, client_name, client_email, client_birth_date
		FROM clients
		WHERE client_id = $1
	`

	var client models.Client
	err := r.q.QueryRow(ctx, query, clientID).Scan(
		&client.ClientID,
		&client.Name,
		&client.Email,
		&client.BirthDate,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}

	return &client, nil
}
