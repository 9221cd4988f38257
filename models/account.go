package models

// Account links an account number to the client that owns it
type Account struct {
	AccountID int64  `db:"account_id"`
	ClientID  string `db:"client_id"`
}
