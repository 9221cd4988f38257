package service

import (
	"context"
	"fmt"

	"ledgerimport/events"
	"ledgerimport/models"

	log "github.com/sirupsen/logrus"
)

// ImportOptions tunes cleansing and commit behavior
type ImportOptions struct {
	// MaxTransactionID drops transactions with a larger id; zero means DefaultMaxTransactionID
	MaxTransactionID int64

	// Phased commits each dataset separately instead of all three together
	Phased bool
}

// ImportService fetches the remote exports, cleanses transactions and loads everything
type ImportService struct {
	source     DataSource
	uowFactory UnitOfWorkFactory
	opts       ImportOptions
}

// NewImportService creates a new import service
func NewImportService(source DataSource, uowFactory UnitOfWorkFactory, opts ImportOptions) *ImportService {
	if opts.MaxTransactionID == 0 {
		opts.MaxTransactionID = DefaultMaxTransactionID
	}
	return &ImportService{
		source:     source,
		uowFactory: uowFactory,
		opts:       opts,
	}
}

// Import runs one full fetch, cleanse and load cycle.
// On any failure the returned counts reflect only rows that were actually committed,
// which in atomic mode means all zeros.
func (s *ImportService) Import(ctx context.Context) (models.ImportCounts, error) {
	accounts, err := s.source.FetchAccounts(ctx)
	if err != nil {
		log.WithError(err).Error("Error downloading or reading accounts CSV")
		return models.ImportCounts{}, fmt.Errorf("%w: accounts: %w", ErrBulkFetch, err)
	}

	clients, err := s.source.FetchClients(ctx)
	if err != nil {
		log.WithError(err).Error("Error downloading or reading clients CSV")
		return models.ImportCounts{}, fmt.Errorf("%w: clients: %w", ErrBulkFetch, err)
	}

	raw, err := s.source.FetchTransactions(ctx)
	if err != nil {
		log.WithError(err).Error("Error fetching transactions")
		return models.ImportCounts{}, fmt.Errorf("%w: %w", ErrPageFetch, err)
	}

	transactions, report := CleanseTransactions(raw, s.opts.MaxTransactionID)
	log.WithFields(log.Fields{
		"input":                  report.Input,
		"kept":                   report.Kept,
		"invalid_timestamp":      report.InvalidTimestamp,
		"invalid_amount":         report.InvalidAmount,
		"invalid_account_id":     report.InvalidAccountID,
		"invalid_transaction_id": report.InvalidTransactionID,
		"above_max_id":           report.AboveMaxID,
		"duplicates":             report.Duplicates,
	}).Info("Transactions cleansed")

	if s.opts.Phased {
		return s.loadPhased(ctx, accounts, clients, transactions)
	}
	return s.loadAtomic(ctx, accounts, clients, transactions)
}

// loadAtomic writes all three datasets in one unit of work
func (s *ImportService) loadAtomic(ctx context.Context, accounts []models.Account, clients []models.Client, transactions []models.Transaction) (models.ImportCounts, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).Error("Error inserting data")
		return models.ImportCounts{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer uow.Rollback()

	err := insertAccounts(ctx, uow, accounts)
	if err == nil {
		err = insertClients(ctx, uow, clients)
	}
	if err == nil {
		err = insertTransactions(ctx, uow, transactions)
	}
	if err == nil {
		err = uow.Commit()
	}
	if err != nil {
		log.WithError(err).Error("Error inserting data")
		return models.ImportCounts{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return models.ImportCounts{
		Clients:      len(clients),
		Accounts:     len(accounts),
		Transactions: len(transactions),
	}, nil
}

// loadPhased commits accounts, clients and transactions in separate units of work.
// A failed phase stops the load; phases committed before it keep their counts.
func (s *ImportService) loadPhased(ctx context.Context, accounts []models.Account, clients []models.Client, transactions []models.Transaction) (models.ImportCounts, error) {
	var counts models.ImportCounts

	phases := []struct {
		dataset string
		insert  func(UnitOfWork) error
		record  func()
	}{
		{
			dataset: events.DatasetAccounts,
			insert:  func(uow UnitOfWork) error { return insertAccounts(ctx, uow, accounts) },
			record:  func() { counts.Accounts = len(accounts) },
		},
		{
			dataset: events.DatasetClients,
			insert:  func(uow UnitOfWork) error { return insertClients(ctx, uow, clients) },
			record:  func() { counts.Clients = len(clients) },
		},
		{
			dataset: events.DatasetTransactions,
			insert:  func(uow UnitOfWork) error { return insertTransactions(ctx, uow, transactions) },
			record:  func() { counts.Transactions = len(transactions) },
		},
	}

	for _, phase := range phases {
		if err := s.runPhase(ctx, phase.insert); err != nil {
			log.WithFields(log.Fields{
				"dataset": phase.dataset,
				"error":   err,
			}).Error("Error inserting data")
			return counts, fmt.Errorf("%w: %s: %w", ErrLoad, phase.dataset, err)
		}
		phase.record()
	}

	return counts, nil
}

func (s *ImportService) runPhase(ctx context.Context, insert func(UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := insert(uow); err != nil {
		return err
	}
	return uow.Commit()
}

func insertAccounts(ctx context.Context, uow UnitOfWork, accounts []models.Account) error {
	repo := uow.AccountRepository()
	for i := range accounts {
		if err := repo.Create(ctx, &accounts[i]); err != nil {
			return err
		}
	}
	uow.EventBus().Publish(events.DatasetLoadedEvent{Dataset: events.DatasetAccounts, Rows: len(accounts)})
	return nil
}

func insertClients(ctx context.Context, uow UnitOfWork, clients []models.Client) error {
	repo := uow.ClientRepository()
	for i := range clients {
		if err := repo.Create(ctx, &clients[i]); err != nil {
			return err
		}
	}
	uow.EventBus().Publish(events.DatasetLoadedEvent{Dataset: events.DatasetClients, Rows: len(clients)})
	return nil
}

func insertTransactions(ctx context.Context, uow UnitOfWork, transactions []models.Transaction) error {
	repo := uow.TransactionRepository()
	for i := range transactions {
		if err := repo.Create(ctx, &transactions[i]); err != nil {
			return err
		}
	}
	uow.EventBus().Publish(events.DatasetLoadedEvent{Dataset: events.DatasetTransactions, Rows: len(transactions)})
	return nil
}
