package repository

import (
	"context"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// WorkRepository handles persistence of musical works and their contributor links.
type WorkRepository interface {
	// Create inserts a single work and fills in its assigned ID and timestamps.
	Create(ctx context.Context, work *domain.Work) error

	// CreateBatch inserts works in a single statement and returns them with
	// assigned IDs, in input order.
	CreateBatch(ctx context.Context, works []*domain.Work) ([]*domain.Work, error)

	// GetByID retrieves a work by its ID.
	// Returns domain.ErrNotFound if no matching work exists.
	GetByID(ctx context.Context, id int64) (*domain.Work, error)

	// List retrieves works matching the filter criteria.
	// Returns the matching works and total count for pagination.
	List(ctx context.Context, filter WorkFilter) ([]*domain.Work, int64, error)

	// ExistingTitleKeys returns the title::category keys of all stored works.
	// The import uses this to skip works that were already imported.
	ExistingTitleKeys(ctx context.Context) (map[string]bool, error)

	// AddContributors links people to works. Existing links are left
	// untouched (idempotent bulk insert).
	AddContributors(ctx context.Context, contributors []domain.WorkContributor) error

	// ListContributors retrieves the contributor links of a work in sequence order.
	ListContributors(ctx context.Context, workID int64) ([]domain.WorkContributor, error)
}

// WorkFilter specifies criteria for listing works.
type WorkFilter struct {
	// TitleContains filters to works whose title contains this substring,
	// case-insensitively (optional).
	TitleContains string

	// CategoryID filters to works in a specific category (optional).
	CategoryID *int64

	// PersonID filters to works a specific person contributed to (optional).
	PersonID *int64

	// Limit specifies maximum number of results (default: 100, max: 1000).
	Limit int

	// Offset specifies the starting position for pagination.
	Offset int
}

// Validate checks if the filter has valid values and sets defaults.
func (f *WorkFilter) Validate() error {
	applyPaginationDefaults(&f.Limit, &f.Offset)
	return nil
}
