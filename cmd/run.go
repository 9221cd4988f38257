package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"ledgerimport/config"
	"ledgerimport/database"
	"ledgerimport/events"
	"ledgerimport/models"
	"ledgerimport/repository"
	"ledgerimport/service"
	"ledgerimport/source"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Importer is the part of the import service the run depends on
type Importer interface {
	Import(ctx context.Context) (models.ImportCounts, error)
}

// ViewProvisioner builds the reporting views
type ViewProvisioner interface {
	ProvisionViews(ctx context.Context) error
}

// Run loads configuration, imports the remote datasets and builds the reporting views.
// Only configuration and connection failures are returned; everything after that is
// logged and reflected in the summary line.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cfg)

	logger := log.WithField("run_id", uuid.NewString())
	logger.WithFields(log.Fields{
		"environment": cfg.Environment,
		"load_mode":   cfg.LoadMode,
	}).Info("Starting data import")

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		logger.Info("Closing database connection...")
		db.Close()
	}()
	logger.Info("Database connection established successfully")

	report := db.ProvisionSchema(ctx)
	if !report.OK() {
		logger.WithField("failed_tables", len(report.Failed)).Warn("Some tables could not be set up")
	}

	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeDatasetLoaded, func(ctx context.Context, event events.Event) {
		if loaded, ok := event.(events.DatasetLoadedEvent); ok {
			logger.WithFields(log.Fields{
				"dataset": loaded.Dataset,
				"rows":    loaded.Rows,
			}).Info("Dataset committed")
		}
	})

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	client := source.NewClient(cfg.APIBaseURL, cfg.AdminAPIKey,
		source.WithTimeout(cfg.HTTPTimeout),
		source.WithRetry(cfg.FetchRetryDelay, cfg.FetchMaxRetries),
	)
	importService := service.NewImportService(client, uowFactory, service.ImportOptions{
		MaxTransactionID: cfg.MaxTransactionID,
		Phased:           cfg.LoadMode == config.LoadModePhased,
	})

	ImportAndReport(ctx, os.Stdout, importService, db)
	return nil
}

// ImportAndReport runs the import, builds the views when every dataset has rows,
// and writes the summary line to out.
func ImportAndReport(ctx context.Context, out io.Writer, importer Importer, views ViewProvisioner) models.ImportCounts {
	counts, err := importer.Import(ctx)
	if err != nil {
		log.WithError(err).Error("Data import failed")
	}

	if ShouldProvisionViews(counts) {
		if err := views.ProvisionViews(ctx); err != nil {
			log.WithError(err).Error("Error creating views")
		} else {
			log.Info("Reporting views created")
		}
	} else {
		log.WithField("counts", counts.String()).Warn("Skipping view creation, at least one dataset is empty")
	}

	fmt.Fprintf(out, "Data Import Completed %s\n", counts)
	return counts
}

// ShouldProvisionViews reports whether all three datasets were loaded with rows
func ShouldProvisionViews(counts models.ImportCounts) bool {
	return counts.AllPositive()
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
