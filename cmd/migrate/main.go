package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	"job-posting-backend/config"
	"job-posting-backend/pkg/database/migrations"
	"job-posting-backend/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	dsn := flag.String("database-url", "", "Postgres connection string (defaults to DATABASE_URL)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	url := *dsn
	if url == "" {
		url = cfg.DBUrl
	}
	if url == "" {
		logger.Log.Error("DATABASE_URL is required to run migrations")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		logger.Log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := migrations.NewMigrator(db).Run(ctx, migrations.All); err != nil {
		logger.Log.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}
