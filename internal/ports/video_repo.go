package ports

import (
	"context"

	"github.com/Vovarama1992/baluplix/internal/models"
)

type VideoRepository interface {
	// Insert persists a new record and fills in the store-assigned
	// timestamps. The caller assigns the id.
	Insert(ctx context.Context, video *models.Video) error

	// GetByID returns nil, nil when no record exists.
	GetByID(ctx context.Context, id string) (*models.Video, error)

	// List returns records newest first. With publishedOnly it filters
	// to published=true.
	List(ctx context.Context, publishedOnly bool) ([]models.Video, error)

	// SetPublished flips the publish flag and refreshes updated_at.
	// Returns nil, nil when no record exists.
	SetPublished(ctx context.Context, id string, published bool) (*models.Video, error)

	// Delete removes the record. Returns false when no record existed.
	Delete(ctx context.Context, id string) (bool, error)
}
