package repository

import (
	"context"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// PublisherRepository handles publisher persistence. Publishers carry a
// unique name; near-duplicate spellings from historical imports are resolved
// through the dedup package, which relies on List, UpdateName and Delete.
type PublisherRepository interface {
	// List retrieves publishers matching the filter, ordered by name.
	// Returns the matching publishers and total count for pagination.
	List(ctx context.Context, filter PublisherFilter) ([]*domain.Publisher, int64, error)

	// GetByID retrieves a publisher by its ID.
	// Returns domain.ErrNotFound if no matching publisher exists.
	GetByID(ctx context.Context, id int64) (*domain.Publisher, error)

	// GetOrCreate retrieves an existing publisher by exact name or creates a
	// new one. The name is trimmed before lookup; empty names are rejected.
	GetOrCreate(ctx context.Context, name string) (*domain.Publisher, error)

	// UpdateName overwrites a publisher's display name.
	// Returns domain.ErrNotFound if the publisher does not exist and
	// domain.ErrAlreadyExists if the name is taken by another publisher.
	UpdateName(ctx context.Context, id int64, name string) error

	// Delete removes a publisher. Callers must repoint referencing
	// publications first; a remaining reference fails the delete.
	// Returns domain.ErrNotFound if the publisher does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of publishers.
	Count(ctx context.Context) (int64, error)
}

// PublisherFilter specifies criteria for listing publishers.
type PublisherFilter struct {
	// NameContains filters to publishers whose name contains this substring,
	// case-insensitively (optional).
	NameContains string

	// Limit specifies maximum number of results (default: 100, max: 1000).
	Limit int

	// Offset specifies the starting position for pagination.
	Offset int
}

// Validate checks if the filter has valid values and sets defaults.
func (f *PublisherFilter) Validate() error {
	applyPaginationDefaults(&f.Limit, &f.Offset)
	return nil
}
