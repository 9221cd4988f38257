package service

import (
	"context"

	"ledgerimport/events"
	"ledgerimport/models"
	"ledgerimport/source"
)

// DataSource defines the remote API the importer reads from
type DataSource interface {
	// FetchAccounts downloads the full accounts export
	FetchAccounts(ctx context.Context) ([]models.Account, error)

	// FetchClients downloads the full clients export
	FetchClients(ctx context.Context) ([]models.Client, error)

	// FetchTransactions walks every page of the transactions endpoint
	FetchTransactions(ctx context.Context) ([]source.RawTransaction, error)
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create inserts a single account row
	Create(ctx context.Context, account *models.Account) error
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create inserts a single client row
	Create(ctx context.Context, client *models.Client) error
}

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	// Create inserts a single transaction row
	Create(ctx context.Context, transaction *models.Transaction) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork groups repository writes into one database transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() AccountRepository
	ClientRepository() ClientRepository
	TransactionRepository() TransactionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
