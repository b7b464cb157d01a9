package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/chistym17/jobgenie/internal/shared/config"
	"github.com/chistym17/jobgenie/internal/shared/storage/db"
)

// Applies pending schema migrations and exits. Meant for deploy steps
// and local setup; the api binary also migrates on boot.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultMigrateOptions())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migrations applied")
	os.Exit(0)
}
