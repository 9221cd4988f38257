package database

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// SchemaReport records the outcome of provisioning each base table
type SchemaReport struct {
	Created []string
	Failed  map[string]error
}

// OK reports whether every table was provisioned
func (r SchemaReport) OK() bool {
	return len(r.Failed) == 0
}

// ProvisionSchema creates the base tables if they do not exist yet.
// Each table is attempted independently; a failure is logged and the next table is tried.
func (db *DB) ProvisionSchema(ctx context.Context) SchemaReport {
	report := SchemaReport{Failed: make(map[string]error)}

	for _, table := range BaseTables {
		stmt, err := table.Statement()
		if err == nil {
			_, err = db.Exec(ctx, stmt)
		}
		if err != nil {
			log.WithFields(log.Fields{
				"table": table.Name,
				"error": err,
			}).Error("Error setting up table")
			report.Failed[table.Name] = err
			continue
		}

		log.WithField("table", table.Name).Debug("Table ready")
		report.Created = append(report.Created, table.Name)
	}

	return report
}
