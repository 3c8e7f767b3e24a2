package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/codeelevater/alumni-connect/pkg/db"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "alumni-connect-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Database.URL == "" {
		logger.Fatal("DATABASE_URL is required to run migrations")
	}

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.CACertPath, db.DefaultMigrationsPath); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1) //nolint:gocritic // logger already flushed errors
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides the password of a connection string for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.String()
}
