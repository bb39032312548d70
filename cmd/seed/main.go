// Command seed loads a model-catalog file (.xlsx or .csv) into the
// model_profiles table. Existing entries with the same id are replaced.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"modeladvisor/adapters/catalogfile"
	"modeladvisor/adapters/postgres"
	"modeladvisor/internal/config"
	"modeladvisor/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "data/model_catalog.xlsx", "path to the catalog seed file")
	flag.Parse()

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

	profiles, err := catalogfile.NewReader(filePath).ReadCatalog()
	if err != nil {
		log.Fatalf("failed to read catalog file: %v", err)
	}

	repo := postgres.NewCatalogRepository(db)
	seeded := 0
	for i := range profiles {
		if _, err := repo.UpsertModel(ctx, &profiles[i]); err != nil {
			log.Printf("failed to seed %s: %v", profiles[i].ID, err)
			continue
		}
		seeded++
	}

	log.Printf("seeded %d/%d catalog entries", seeded, len(profiles))
}
