package db

import (
	"errors"
	"fmt"
	"venue-review-api/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration found at sourceURL (file://db/migrations)
// to the database at databaseURL.
func RunMigrations(sourceURL, databaseURL string) error {
	log := logger.Log.WithField("source", sourceURL)
	log.Info("Applying database migrations")

	mig, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.WithError(err).Error("Failed to create migrate instance")
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}
	defer mig.Close()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).Error("Failed to run migrate up")
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	log.WithField("version", version).WithField("dirty", dirty).Info("Database schema is up to date")
	return nil
}
