package container

import (
	"fmt"

	"modeladvisor/adapters/postgres"
	"modeladvisor/ai"
	"modeladvisor/app"
	"modeladvisor/internal"
	"modeladvisor/internal/config"
	"modeladvisor/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	CatalogRepo ports.CatalogRepository
	EventRepo   ports.EventRepository

	// External collaborators
	Classifier ports.TaskClassifier

	// Services
	RecommendService *app.RecommendService
	CatalogService   *app.CatalogService
	HistoryService   *app.HistoryService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{
		Config: cfg,
		Logger: internal.DefaultLogger,
	}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	c.DB = db

	c.CatalogRepo = postgres.NewCatalogRepository(db)
	c.EventRepo = postgres.NewEventRepository(db)

	// The AI classifier is optional; without an API key every request
	// classifies via the keyword heuristic.
	if c.Config.Classifier.APIKey != "" {
		c.Classifier = ai.NewTaskClassifier(ai.ClientConfig{
			APIKey:  c.Config.Classifier.APIKey,
			BaseURL: c.Config.Classifier.BaseURL,
			Model:   c.Config.Classifier.Model,
			Timeout: c.Config.Classifier.Timeout,
		})
	} else {
		c.Logger.Warn("CLASSIFIER_API_KEY not set; task classification runs heuristic-only")
	}

	c.RecommendService = app.NewRecommendService(c.CatalogRepo, c.EventRepo, c.Classifier, c.Logger)
	c.CatalogService = app.NewCatalogService(c.CatalogRepo)
	c.HistoryService = app.NewHistoryService(c.EventRepo)

	c.Logger.Info("container initialized with database connection")
	return nil
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
