package models

import "fmt"

// ImportCounts holds the number of rows loaded per dataset in one run
type ImportCounts struct {
	Clients      int
	Accounts     int
	Transactions int
}

// AllPositive reports whether every dataset loaded at least one row
func (c ImportCounts) AllPositive() bool {
	return c.Clients > 0 && c.Accounts > 0 && c.Transactions > 0
}

func (c ImportCounts) String() string {
	return fmt.Sprintf("[%d, %d, %d]", c.Clients, c.Accounts, c.Transactions)
}
