package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ledgerimport/models"
)

// FetchAccounts downloads and parses the accounts CSV export
func (c *Client) FetchAccounts(ctx context.Context) ([]models.Account, error) {
	body, err := c.get(ctx, accountsPath)
	if err != nil {
		return nil, err
	}

	rows, err := readCSV(body, "account_id", "client_id")
	if err != nil {
		return nil, fmt.Errorf("failed to parse accounts CSV: %w", err)
	}

	accounts := make([]models.Account, 0, len(rows))
	for i, row := range rows {
		accountID, err := strconv.ParseInt(row["account_id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse accounts CSV line %d: invalid account_id %q", i+2, row["account_id"])
		}
		accounts = append(accounts, models.Account{
			AccountID: accountID,
			ClientID:  row["client_id"],
		})
	}

	return accounts, nil
}

// FetchClients downloads and parses the clients CSV export
func (c *Client) FetchClients(ctx context.Context) ([]models.Client, error) {
	body, err := c.get(ctx, clientsPath)
	if err != nil {
		return nil, err
	}

	rows, err := readCSV(body, "client_id", "client_name", "client_email", "client_birth_date")
	if err != nil {
		return nil, fmt.Errorf("failed to parse clients CSV: %w", err)
	}

	clients := make([]models.Client, 0, len(rows))
	for i, row := range rows {
		client := models.Client{
			ClientID: row["client_id"],
			Name:     row["client_name"],
			Email:    row["client_email"],
		}
		if raw := row["client_birth_date"]; raw != "" {
			birthDate, err := models.ParseTimestamp(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse clients CSV line %d: %w", i+2, err)
			}
			client.BirthDate = &birthDate
		}
		clients = append(clients, client)
	}

	return clients, nil
}

// readCSV parses a CSV document with a header row into maps keyed by column name.
// Every required column must be present in the header.
func readCSV(data []byte, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty document")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(map[string]string, len(index))
		for name, i := range index {
			row[name] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
