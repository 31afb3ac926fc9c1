package dedup

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// PublisherStore defines the data store operations needed by the Merger.
type PublisherStore interface {
	// RepointPublications updates every publication referencing sourceID to
	// reference targetID instead, returning the number of rows repointed.
	RepointPublications(ctx context.Context, sourceID, targetID int64) (int64, error)

	// DeletePublisher removes a publisher record.
	// Returns domain.ErrNotFound if the publisher does not exist.
	DeletePublisher(ctx context.Context, id int64) error

	// UpdatePublisherName overwrites a publisher's display name.
	// Returns domain.ErrNotFound if the publisher does not exist.
	UpdatePublisherName(ctx context.Context, id int64, name string) error
}

// MergeResult describes the outcome of a completed (or substantively
// completed) merge.
type MergeResult struct {
	// Repointed is the number of publications moved from source to target.
	Repointed int64

	// Renamed reports whether the optional rename of the target was applied.
	Renamed bool
}

// Merger coordinates the two-party publisher merge: re-point all dependent
// publications from the source publisher to the target, delete the source,
// then optionally rename the target. The three steps are strictly ordered and
// never run in parallel; each must complete before the next begins.
//
// The Merger does not retry and does not roll back. If the repoint step fails,
// nothing was changed. If the delete step fails after a successful repoint,
// the source survives as an orphaned publisher with zero referencing
// publications, which is safe: retrying the delete alone completes the merge.
// Failures carry the failed step via domain.MergeError so callers can report
// exactly how far the operation got.
type Merger struct {
	store  PublisherStore
	logger zerolog.Logger
}

// NewMerger creates a new Merger backed by the given store.
func NewMerger(store PublisherStore, logger zerolog.Logger) *Merger {
	return &Merger{
		store:  store,
		logger: logger.With().Str("component", "publisher-merger").Logger(),
	}
}

// Merge merges the source publisher into the target. newName, if non-empty,
// renames the surviving target as a final step.
//
// Merging a publisher into itself is a caller error and is rejected with a
// validation error before any write.
func (m *Merger) Merge(ctx context.Context, sourceID, targetID int64, newName string) (*MergeResult, error) {
	if sourceID == targetID {
		return nil, domain.NewValidationError("source_id", "cannot merge a publisher into itself")
	}

	newName = domain.NormalizePublisherName(newName)

	repointed, err := m.store.RepointPublications(ctx, sourceID, targetID)
	if err != nil {
		return nil, domain.NewMergeError(domain.MergeStepRepoint, err)
	}

	if err := m.store.DeletePublisher(ctx, sourceID); err != nil {
		m.logger.Error().
			Err(err).
			Int64("source_id", sourceID).
			Int64("target_id", targetID).
			Int64("repointed", repointed).
			Msg("source publisher delete failed after repoint; source is orphaned, retry the delete")
		return nil, domain.NewMergeError(domain.MergeStepDelete, err)
	}

	result := &MergeResult{Repointed: repointed}

	if newName != "" {
		if err := m.store.UpdatePublisherName(ctx, targetID, newName); err != nil {
			// The duplicate is already eliminated; report the rename failure
			// alongside the substantive result.
			return result, domain.NewMergeError(domain.MergeStepRename, err)
		}
		result.Renamed = true
	}

	m.logger.Info().
		Int64("source_id", sourceID).
		Int64("target_id", targetID).
		Int64("repointed", repointed).
		Bool("renamed", result.Renamed).
		Msg("publishers merged")

	return result, nil
}

// Rename overwrites a publisher's display name. The new name must be non-empty
// after trimming surrounding whitespace; empty names are rejected before any
// write. Renaming has no cascading effect on publications.
func (m *Merger) Rename(ctx context.Context, id int64, newName string) error {
	newName = domain.NormalizePublisherName(newName)
	if newName == "" {
		return domain.NewValidationError("name", "publisher name cannot be empty")
	}

	if err := m.store.UpdatePublisherName(ctx, id, newName); err != nil {
		return err
	}

	m.logger.Info().
		Str("publisher_id", strconv.FormatInt(id, 10)).
		Str("name", newName).
		Msg("publisher renamed")

	return nil
}
