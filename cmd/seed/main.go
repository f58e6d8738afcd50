// cmd/seed/main.go
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/artwithshyz/storefront/internal/config"
	"github.com/artwithshyz/storefront/internal/database"
)

// Seeds the default admin account and a small sample catalog. Safe to run
// more than once; existing rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	if err := database.SeedInitialData(db); err != nil {
		logrus.WithError(err).Fatal("Failed to seed data")
	}

	logrus.Info("Seed completed")
}
