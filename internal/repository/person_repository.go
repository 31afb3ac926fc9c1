package repository

import (
	"context"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// PersonRepository handles persistence of composers, lyricists and other
// contributors. People are keyed by full name: the historical CSV exports
// carry no identifiers beyond the printed name and lifespan.
type PersonRepository interface {
	// GetByID retrieves a person by ID.
	// Returns domain.ErrNotFound if no matching person exists.
	GetByID(ctx context.Context, id int64) (*domain.Person, error)

	// GetOrCreate retrieves an existing person by full name or creates a new one.
	GetOrCreate(ctx context.Context, fullName string) (*domain.Person, error)

	// BulkGetOrCreate retrieves or creates multiple people in a single
	// statement. Results come back in input order; empty names are skipped.
	// Lifespan fields on the input are only applied to newly created rows.
	BulkGetOrCreate(ctx context.Context, people []*domain.Person) ([]*domain.Person, error)

	// List retrieves people matching the filter, ordered by full name.
	// Returns the matching people and total count for pagination.
	List(ctx context.Context, filter PersonFilter) ([]*domain.Person, int64, error)
}

// PersonFilter specifies criteria for listing people.
type PersonFilter struct {
	// NameContains filters to people whose full name contains this substring,
	// case-insensitively (optional).
	NameContains string

	// Limit specifies maximum number of results (default: 100, max: 1000).
	Limit int

	// Offset specifies the starting position for pagination.
	Offset int
}

// Validate checks if the filter has valid values and sets defaults.
func (f *PersonFilter) Validate() error {
	applyPaginationDefaults(&f.Limit, &f.Offset)
	return nil
}
