package repository

import (
	"context"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// CategoryRepository handles persistence of work categories. Each category
// corresponds to one historical table-of-contents booklet, so the set is
// small and static between imports.
type CategoryRepository interface {
	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*domain.Category, error)

	// GetByID retrieves a category by ID.
	// Returns domain.ErrNotFound if no matching category exists.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetOrCreate retrieves an existing category by name or creates a new one.
	GetOrCreate(ctx context.Context, name string) (*domain.Category, error)
}
