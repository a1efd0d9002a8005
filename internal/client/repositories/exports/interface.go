package exports

import (
	"context"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
)

// Repository records exports and their archive state.
type Repository interface {
	// Create inserts e and sets e.ID.
	Create(ctx context.Context, e *models.Export) error

	// List returns the newest exports first; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]models.Export, error)

	// GetAllPendingArchive returns exports still waiting for upload, oldest
	// first.
	GetAllPendingArchive(ctx context.Context) ([]models.Export, error)

	// MarkArchived stores the object key and link of an uploaded export.
	MarkArchived(ctx context.Context, id int64, key, url string) error
}
