package models

import (
	"time"
)

// Client is a customer record from the clients CSV export
type Client struct {
	ClientID  string     `db:"client_id"`
	Name      string     `db:"client_name"`
	Email     string     `db:"client_email"`
	BirthDate *time.Time `db:"client_birth_date"` // nil when the export leaves it blank
}
