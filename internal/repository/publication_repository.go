package repository

import (
	"context"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// PublicationRepository handles publication persistence. Publications are the
// referencing side of publisher merges: Repoint moves them wholesale from one
// publisher to another before the source publisher is deleted.
type PublicationRepository interface {
	// Repoint moves every publication referencing sourceID to reference
	// targetID instead, returning the number of rows updated. Repointing to
	// a missing target fails with domain.ErrNotFound.
	Repoint(ctx context.Context, sourceID, targetID int64) (int64, error)

	// CreateBatch inserts publications in a single statement. IDs are
	// assigned by the database; the input slice is not mutated.
	CreateBatch(ctx context.Context, publications []*domain.Publication) error

	// ListByWork retrieves all publications of a work, oldest edition first.
	ListByWork(ctx context.Context, workID int64) ([]*domain.Publication, error)

	// CountByPublisher returns the number of publications referencing a publisher.
	CountByPublisher(ctx context.Context, publisherID int64) (int64, error)
}
