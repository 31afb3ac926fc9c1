package dedup

import (
	"context"
	"errors"

	"github.com/helixir/music-catalog-service/internal/domain"
	"github.com/helixir/music-catalog-service/internal/repository"
)

// storeAdapter bridges the repository layer to the narrow PublisherStore
// interface the Merger depends on.
type storeAdapter struct {
	publishers   repository.PublisherRepository
	publications repository.PublicationRepository
}

var _ PublisherStore = (*storeAdapter)(nil)

// NewPublisherStore wraps the publisher and publication repositories as a
// PublisherStore suitable for NewMerger.
func NewPublisherStore(publishers repository.PublisherRepository, publications repository.PublicationRepository) PublisherStore {
	return &storeAdapter{
		publishers:   publishers,
		publications: publications,
	}
}

func (s *storeAdapter) RepointPublications(ctx context.Context, sourceID, targetID int64) (int64, error) {
	repointed, err := s.publications.Repoint(ctx, sourceID, targetID)
	return repointed, wrapStoreErr("repoint", err)
}

func (s *storeAdapter) DeletePublisher(ctx context.Context, id int64) error {
	return wrapStoreErr("delete", s.publishers.Delete(ctx, id))
}

func (s *storeAdapter) UpdatePublisherName(ctx context.Context, id int64, name string) error {
	return wrapStoreErr("rename", s.publishers.UpdateName(ctx, id, name))
}

// wrapStoreErr tags a repository failure with the store operation that
// failed. Domain errors pass through untouched; their meaning and HTTP
// status mapping must survive the adapter.
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	return domain.NewStoreError(op, err)
}
