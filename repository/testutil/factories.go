package testutil

import (
	"time"

	"ledgerimport/models"

	"github.com/shopspring/decimal"
)

// CreateTestAccount creates a test account owned by clientID
func CreateTestAccount(accountID int64, clientID string) *models.Account {
	return &models.Account{
		AccountID: accountID,
		ClientID:  clientID,
	}
}

// CreateTestClient creates a test client with a derived email and a fixed birth date
func CreateTestClient(clientID, name string) *models.Client {
	birthDate := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	return &models.Client{
		ClientID:  clientID,
		Name:      name,
		Email:     clientID + "@example.com",
		BirthDate: &birthDate,
	}
}

// CreateTestTransaction creates a test card credit
func CreateTestTransaction(transactionID, accountID int64, amount string, timestamp time.Time) *models.Transaction {
	return &models.Transaction{
		TransactionID: transactionID,
		Timestamp:     timestamp,
		AccountID:     accountID,
		Amount:        decimal.RequireFromString(amount),
		Type:          models.TransactionTypeCredit,
		Medium:        models.MediumCard,
	}
}

// CreateTestDebit creates a test debit over the given medium
func CreateTestDebit(transactionID, accountID int64, amount string, timestamp time.Time, medium models.Medium) *models.Transaction {
	transaction := CreateTestTransaction(transactionID, accountID, amount, timestamp)
	transaction.Type = models.TransactionTypeDebit
	transaction.Medium = medium
	return transaction
}
