package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// URLParams are the individual connection settings read from the environment
type URLParams struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
}

// ConstructDatabaseURL assembles a postgres:// connection URL from its parts.
// Credentials are escaped and sslmode defaults to disable.
func ConstructDatabaseURL(p URLParams) string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(sslMode)),
	}

	return u.String()
}
