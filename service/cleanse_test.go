package service

import (
	"encoding/json"
	"testing"
	"time"

	"ledgerimport/models"
	"ledgerimport/source"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawTx builds a well-formed raw row; tests override individual fields
func rawTx(id any) source.RawTransaction {
	return source.RawTransaction{
		TransactionID: id,
		Timestamp:     "2024-01-15T10:00:00",
		AccountID:     json.Number("7"),
		Amount:        json.Number("12.50"),
		Type:          "True",
		Medium:        "card",
	}
}

func TestCleanseTransactions_WellFormed(t *testing.T) {
	raw := []source.RawTransaction{rawTx(json.Number("1")), rawTx("2"), rawTx(json.Number("3"))}

	cleansed, report := CleanseTransactions(raw, DefaultMaxTransactionID)

	require.Len(t, cleansed, 3)
	assert.Equal(t, 3, report.Kept)
	assert.Zero(t, report.Dropped())

	first := cleansed[0]
	assert.Equal(t, int64(1), first.TransactionID)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, int64(7), first.AccountID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(first.Amount))
	assert.Equal(t, models.TransactionTypeDebit, first.Type)
	assert.Equal(t, models.MediumCard, first.Medium)
}

func TestCleanseTransactions_DropsAboveMaxID(t *testing.T) {
	raw := []source.RawTransaction{
		rawTx(json.Number("30000")),
		rawTx(json.Number("30001")),
		rawTx("99999999999999999999999"),
	}

	cleansed, report := CleanseTransactions(raw, DefaultMaxTransactionID)

	require.Len(t, cleansed, 1)
	assert.Equal(t, int64(30000), cleansed[0].TransactionID)
	assert.Equal(t, 2, report.AboveMaxID)
}

func TestCleanseTransactions_ConfigurableMaxID(t *testing.T) {
	raw := []source.RawTransaction{rawTx("5"), rawTx("10"), rawTx("11")}

	cleansed, report := CleanseTransactions(raw, 10)

	assert.Len(t, cleansed, 2)
	assert.Equal(t, 1, report.AboveMaxID)
}

func TestCleanseTransactions_DuplicateKeepsFirst(t *testing.T) {
	first := rawTx(json.Number("10"))
	first.Medium = "online"
	second := rawTx("10")
	second.Medium = "transfer"
	padded := rawTx("010")

	cleansed, report := CleanseTransactions([]source.RawTransaction{first, second, padded}, DefaultMaxTransactionID)

	require.Len(t, cleansed, 1)
	assert.Equal(t, models.MediumOnline, cleansed[0].Medium)
	assert.Equal(t, 2, report.Duplicates)
}

func TestCleanseTransactions_InvalidTransactionIDs(t *testing.T) {
	ids := []any{"abc", "-5", "1.0", json.Number("2.5"), "", nil, true, " 3"}
	raw := make([]source.RawTransaction, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, rawTx(id))
	}

	cleansed, report := CleanseTransactions(raw, DefaultMaxTransactionID)

	assert.Empty(t, cleansed)
	assert.Equal(t, len(ids), report.InvalidTransactionID)
}

func TestCleanseTransactions_InvalidTimestampAndAmount(t *testing.T) {
	badTimestamp := rawTx("1")
	badTimestamp.Timestamp = "not a date"
	missingTimestamp := rawTx("2")
	missingTimestamp.Timestamp = nil
	numericTimestamp := rawTx("3")
	numericTimestamp.Timestamp = json.Number("1700000000")

	badAmount := rawTx("4")
	badAmount.Amount = "twelve"
	missingAmount := rawTx("5")
	missingAmount.Amount = nil

	stringAmount := rawTx("6")
	stringAmount.Amount = " -42.10 "

	cleansed, report := CleanseTransactions([]source.RawTransaction{
		badTimestamp, missingTimestamp, numericTimestamp, badAmount, missingAmount, stringAmount,
	}, DefaultMaxTransactionID)

	require.Len(t, cleansed, 1)
	assert.Equal(t, int64(6), cleansed[0].TransactionID)
	assert.True(t, decimal.RequireFromString("-42.1").Equal(cleansed[0].Amount))
	assert.Equal(t, 3, report.InvalidTimestamp)
	assert.Equal(t, 2, report.InvalidAmount)
}

func TestCleanseTransactions_AccountIDCoercion(t *testing.T) {
	fromString := rawTx("1")
	fromString.AccountID = "42"
	fromWholeFloat := rawTx("2")
	fromWholeFloat.AccountID = json.Number("43.0")
	fractional := rawTx("3")
	fractional.AccountID = json.Number("43.5")
	missing := rawTx("4")
	missing.AccountID = nil

	cleansed, report := CleanseTransactions([]source.RawTransaction{fromString, fromWholeFloat, fractional, missing}, DefaultMaxTransactionID)

	require.Len(t, cleansed, 2)
	assert.Equal(t, int64(42), cleansed[0].AccountID)
	assert.Equal(t, int64(43), cleansed[1].AccountID)
	assert.Equal(t, 2, report.InvalidAccountID)
}

func TestCleanseTransactions_NormalizesType(t *testing.T) {
	upper := rawTx("1")
	upper.Type = "True"
	lower := rawTx("2")
	lower.Type = "false"
	boolean := rawTx("3")
	boolean.Type = true

	cleansed, _ := CleanseTransactions([]source.RawTransaction{upper, lower, boolean}, DefaultMaxTransactionID)

	require.Len(t, cleansed, 3)
	assert.Equal(t, models.TransactionTypeDebit, cleansed[0].Type)
	assert.Equal(t, models.TransactionTypeCredit, cleansed[1].Type)
	assert.Equal(t, models.TransactionTypeDebit, cleansed[2].Type)
}

func TestCleanseTransactions_SurvivorsAreValid(t *testing.T) {
	raw := []source.RawTransaction{
		rawTx("1"), rawTx("1"), rawTx("30001"), rawTx("x"), rawTx("29999"), rawTx(json.Number("5")),
	}
	raw[4].Amount = "bad"

	cleansed, report := CleanseTransactions(raw, DefaultMaxTransactionID)

	seen := map[int64]bool{}
	for _, tx := range cleansed {
		assert.False(t, tx.Timestamp.IsZero())
		assert.GreaterOrEqual(t, tx.TransactionID, int64(0))
		assert.LessOrEqual(t, tx.TransactionID, DefaultMaxTransactionID)
		assert.False(t, seen[tx.TransactionID], "duplicate id %d", tx.TransactionID)
		seen[tx.TransactionID] = true
	}
	assert.Equal(t, report.Input, report.Kept+report.InvalidTimestamp+report.InvalidAmount+
		report.InvalidAccountID+report.InvalidTransactionID+report.AboveMaxID+report.Duplicates)
	assert.Equal(t, 2, report.Kept)
}

func TestCleanseTransactions_Empty(t *testing.T) {
	cleansed, report := CleanseTransactions(nil, DefaultMaxTransactionID)
	assert.Empty(t, cleansed)
	assert.Zero(t, report.Input)
}
