package ports

import (
	"context"

	"modeladvisor/models"
)

// TaskClassifier turns a raw task description into a structured profile.
// Implementations must respect the context deadline; callers recover
// from any error by falling back to the local keyword heuristic.
type TaskClassifier interface {
	Classify(ctx context.Context, task string) (*models.TaskProfile, error)
}
