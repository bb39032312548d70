// Command migrate applies the database schema and exits. The server
// also migrates on startup; this exists for deployment pipelines that
// migrate before rolling instances.
package main

import (
	"context"
	"log"
	"time"

	"modeladvisor/internal/config"
	"modeladvisor/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	log.Println("migrations completed")
}
