package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"modeladvisor/internal/config"
	"modeladvisor/internal/container"
	"modeladvisor/internal/migration"
	"modeladvisor/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments configure the environment.
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("failed to create container: %v", err)
	}
	if err := c.InitWithDatabase(db); err != nil {
		log.Fatalf("failed to initialize container: %v", err)
	}
	defer c.Close()

	application := ui.NewApp(c.RecommendService, c.CatalogService, c.HistoryService, c.Logger)

	addr := ":" + cfg.Server.Port
	c.Logger.Info("starting modeladvisor on %s", addr)
	if err := http.ListenAndServe(addr, application.Router()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
