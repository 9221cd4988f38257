package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledgerimport/models"
	"ledgerimport/source"

	"github.com/shopspring/decimal"
)

// DefaultMaxTransactionID is the highest transaction id accepted unless configured otherwise
const DefaultMaxTransactionID int64 = 30000

// CleanseReport counts how many raw rows each filter dropped
type CleanseReport struct {
	Input                int
	InvalidTimestamp     int
	InvalidAmount        int
	InvalidAccountID     int
	InvalidTransactionID int
	AboveMaxID           int
	Duplicates           int
	Kept                 int
}

// Dropped is the total number of rows removed by cleansing
func (r CleanseReport) Dropped() int {
	return r.Input - r.Kept
}

// CleanseTransactions coerces raw API rows into transactions and filters out bad ones.
//
// A row is dropped when its timestamp, amount or account id cannot be coerced, when its
// transaction id is not made only of digits, or when the id exceeds maxTransactionID.
// Of rows sharing an id, the first one in input order is kept.
func CleanseTransactions(raw []source.RawTransaction, maxTransactionID int64) ([]models.Transaction, CleanseReport) {
	report := CleanseReport{Input: len(raw)}
	seen := make(map[int64]struct{}, len(raw))
	cleansed := make([]models.Transaction, 0, len(raw))

	for _, row := range raw {
		timestamp, ok := coerceTimestamp(row.Timestamp)
		if !ok {
			report.InvalidTimestamp++
			continue
		}

		amount, ok := coerceAmount(row.Amount)
		if !ok {
			report.InvalidAmount++
			continue
		}

		accountID, ok := coerceInt(row.AccountID)
		if !ok {
			report.InvalidAccountID++
			continue
		}

		idText := stringify(row.TransactionID)
		if !isDigits(idText) {
			report.InvalidTransactionID++
			continue
		}
		transactionID, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			// too many digits for int64, certainly above any cutoff
			report.AboveMaxID++
			continue
		}

		if transactionID > maxTransactionID {
			report.AboveMaxID++
			continue
		}

		if _, dup := seen[transactionID]; dup {
			report.Duplicates++
			continue
		}
		seen[transactionID] = struct{}{}

		cleansed = append(cleansed, models.Transaction{
			TransactionID: transactionID,
			Timestamp:     timestamp,
			AccountID:     accountID,
			Amount:        amount,
			Type:          models.ParseTransactionType(stringify(row.Type)),
			Medium:        models.Medium(stringify(row.Medium)),
		})
	}

	report.Kept = len(cleansed)
	return cleansed, report
}

// stringify renders a decoded JSON value the way it appeared in the payload
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func coerceTimestamp(v any) (time.Time, bool) {
	raw, isString := v.(string)
	if !isString {
		return time.Time{}, false
	}
	parsed, err := models.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func coerceAmount(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case json.Number:
		return parseDecimal(value.String())
	case string:
		return parseDecimal(value)
	case float64:
		return decimal.NewFromFloat(value), true
	default:
		return decimal.Decimal{}, false
	}
}

func coerceInt(v any) (int64, bool) {
	var d decimal.Decimal
	var ok bool
	switch value := v.(type) {
	case json.Number:
		d, ok = parseDecimal(value.String())
	case string:
		d, ok = parseDecimal(value)
	case float64:
		d, ok = decimal.NewFromFloat(value), true
	}
	if !ok || !d.IsInteger() {
		return 0, false
	}

	n := d.IntPart()
	if !decimal.NewFromInt(n).Equal(d) {
		return 0, false
	}
	return n, true
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
