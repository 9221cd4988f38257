package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// ProvisionViews (re)creates the reporting views in a single transaction.
// If any statement fails, none of the views from this call are kept.
func (db *DB) ProvisionViews(ctx context.Context) error {
	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, view := range ReportingViews {
			stmt, err := view.Statement()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create view %s: %w", view.Name, err)
			}
			log.WithField("view", view.Name).Debug("View created")
		}
		return nil
	})
}
