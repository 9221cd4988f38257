package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// ErrRetriesExhausted is returned when a transactions page keeps failing
var ErrRetriesExhausted = errors.New("transactions page retries exhausted")

// RawTransaction is a transaction exactly as the API sent it.
// Values are json.Number, string, bool or nil; coercion happens during cleansing.
type RawTransaction struct {
	TransactionID any `json:"transaction_id"`
	Timestamp     any `json:"timestamp"`
	AccountID     any `json:"account_id"`
	Amount        any `json:"amount"`
	Type          any `json:"type"`
	Medium        any `json:"medium"`
}

// FetchTransactions walks the paginated transactions endpoint from page 0
// until a page comes back empty. A failed page is retried after a fixed delay;
// once the retry budget is spent the fetch fails with ErrRetriesExhausted.
func (c *Client) FetchTransactions(ctx context.Context) ([]RawTransaction, error) {
	var all []RawTransaction

	for page := 0; ; page++ {
		rows, err := c.fetchPageWithRetry(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			log.WithFields(log.Fields{
				"pages":        page,
				"transactions": len(all),
			}).Info("Transactions pagination complete")
			return all, nil
		}
		all = append(all, rows...)
	}
}

func (c *Client) fetchPageWithRetry(ctx context.Context, page int) ([]RawTransaction, error) {
	var rows []RawTransaction

	operation := func() error {
		var err error
		rows, err = c.fetchTransactionPage(ctx, page)
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.WithFields(log.Fields{
			"page":  page,
			"error": err,
			"retry": wait,
		}).Warn("Error fetching transactions page")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), c.maxRetries),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetching transactions page %d: %w", page, ctxErr)
		}
		return nil, fmt.Errorf("%w: page %d after %d retries: %v", ErrRetriesExhausted, page, c.maxRetries, err)
	}

	return rows, nil
}

func (c *Client) fetchTransactionPage(ctx context.Context, page int) ([]RawTransaction, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s?page=%d", transactionsPath, page))
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var rows []RawTransaction
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode transactions page %d: %w", page, err)
	}

	return rows, nil
}
