package main

import (
	"log"

	"anoa.com/fedipost/internal/bootstrap"
	"anoa.com/fedipost/internal/config"
	"anoa.com/fedipost/internal/server"
	"anoa.com/fedipost/pkg/database"
	"anoa.com/fedipost/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("database connection failed", "error", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		appLog.Fatal("migration failed", "error", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDevelopment(db, cfg.Domain, appLog); err != nil {
			appLog.Fatal("failed to seed development data", "error", err)
		}
	}

	if len(cfg.FederationInboxes) == 0 {
		appLog.Warn("FEDERATION_INBOXES is empty, activities will not leave this server")
	}

	srv := server.NewServer(cfg, db, appLog, server.Dependencies{})
	if err := srv.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("server exited with error", "error", err)
	}
}
