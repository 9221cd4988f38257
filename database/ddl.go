package database

import (
	"embed"
	"fmt"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaObject is a named table or view backed by an embedded migration file
type SchemaObject struct {
	Name string
	File string
}

// BaseTables lists the tables loaded by the importer, in creation order
var BaseTables = []SchemaObject{
	{Name: "accounts", File: "000001_create_accounts.up.sql"},
	{Name: "clients", File: "000002_create_clients.up.sql"},
	{Name: "transactions", File: "000003_create_transactions.up.sql"},
}

// ReportingViews lists the aggregate views built over the base tables
var ReportingViews = []SchemaObject{
	{Name: "total_daily_transactions", File: "000004_create_total_daily_transactions.up.sql"},
	{Name: "monthly_transaction_summary", File: "000005_create_monthly_transaction_summary.up.sql"},
	{Name: "monthly_high_debits", File: "000006_create_monthly_high_debits.up.sql"},
}

// Statement returns the DDL text for the object
func (o SchemaObject) Statement() (string, error) {
	data, err := migrationsFS.ReadFile("migrations/" + o.File)
	if err != nil {
		return "", fmt.Errorf("failed to read DDL for %s: %w", o.Name, err)
	}
	return string(data), nil
}
