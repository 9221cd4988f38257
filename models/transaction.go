package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the debit flag carried by every transaction.
// The remote API sends it as a boolean-like string with inconsistent casing.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "true"
	TransactionTypeCredit TransactionType = "false"
)

// ParseTransactionType normalizes the raw API value case-insensitively.
// Values other than true/false are lower-cased and kept as-is.
func ParseTransactionType(raw string) TransactionType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case string(TransactionTypeDebit):
		return TransactionTypeDebit
	case string(TransactionTypeCredit):
		return TransactionTypeCredit
	default:
		return TransactionType(normalized)
	}
}

// IsDebit reports whether the transaction reduces the account balance
func (t TransactionType) IsDebit() bool {
	return t == TransactionTypeDebit
}

// Medium is the channel a transaction went through
type Medium string

const (
	MediumCard     Medium = "card"
	MediumOnline   Medium = "online"
	MediumTransfer Medium = "transfer"
)

// Transaction is a cleansed transaction ready to be stored
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	Timestamp     time.Time       `db:"timestamp"`
	AccountID     int64           `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          TransactionType `db:"type"`
	Medium        Medium          `db:"medium"`
}
