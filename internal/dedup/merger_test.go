package dedup

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// fakeStore records the order of store calls and fails on demand.
type fakeStore struct {
	calls []string

	repointCount int64
	repointErr   error
	deleteErr    error
	renameErr    error

	renamedTo string
}

func (f *fakeStore) RepointPublications(_ context.Context, sourceID, targetID int64) (int64, error) {
	f.calls = append(f.calls, "repoint")
	if f.repointErr != nil {
		return 0, f.repointErr
	}
	return f.repointCount, nil
}

func (f *fakeStore) DeletePublisher(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	return f.deleteErr
}

func (f *fakeStore) UpdatePublisherName(_ context.Context, id int64, name string) error {
	f.calls = append(f.calls, "rename")
	if f.renameErr != nil {
		return f.renameErr
	}
	f.renamedTo = name
	return nil
}

func newTestMerger(store PublisherStore) *Merger {
	return NewMerger(store, zerolog.Nop())
}

func TestMergerMerge(t *testing.T) {
	t.Parallel()

	t.Run("merges and renames in order", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{repointCount: 12}
		result, err := newTestMerger(store).Merge(context.Background(), 2, 1, "Norsk Musikforlag")

		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Repointed)
		assert.True(t, result.Renamed)
		assert.Equal(t, "Norsk Musikforlag", store.renamedTo)
		assert.Equal(t, []string{"repoint", "delete", "rename"}, store.calls)
	})

	t.Run("skips rename when no name given", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{repointCount: 3}
		result, err := newTestMerger(store).Merge(context.Background(), 2, 1, "")

		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Repointed)
		assert.False(t, result.Renamed)
		assert.Equal(t, []string{"repoint", "delete"}, store.calls)
	})

	t.Run("whitespace-only name is treated as no rename", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		result, err := newTestMerger(store).Merge(context.Background(), 2, 1, "   ")

		require.NoError(t, err)
		assert.False(t, result.Renamed)
		assert.Equal(t, []string{"repoint", "delete"}, store.calls)
	})

	t.Run("rejects merging a publisher into itself", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		result, err := newTestMerger(store).Merge(context.Background(), 5, 5, "")

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Empty(t, store.calls, "no store call may happen for a self-merge")
	})

	t.Run("repoint failure stops before delete", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{repointErr: errors.New("connection reset")}
		result, err := newTestMerger(store).Merge(context.Background(), 2, 1, "")

		assert.Nil(t, result)
		var mergeErr *domain.MergeError
		require.ErrorAs(t, err, &mergeErr)
		assert.Equal(t, domain.MergeStepRepoint, mergeErr.Step)
		assert.Equal(t, []string{"repoint"}, store.calls)
	})

	t.Run("delete failure reports the delete step", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{repointCount: 4, deleteErr: errors.New("timeout")}
		result, err := newTestMerger(store).Merge(context.Background(), 2, 1, "New Name")

		assert.Nil(t, result)
		var mergeErr *domain.MergeError
		require.ErrorAs(t, err, &mergeErr)
		assert.Equal(t, domain.MergeStepDelete, mergeErr.Step)
		assert.Equal(t, []string{"repoint", "delete"}, store.calls, "rename must not run after a failed delete")
	})

	t.Run("rename failure still returns the merge result", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{repointCount: 7, renameErr: errors.New("timeout")}
		result, err := newTestMerger(store).Merge(context.Background(), 2, 1, "New Name")

		var mergeErr *domain.MergeError
		require.ErrorAs(t, err, &mergeErr)
		assert.Equal(t, domain.MergeStepRename, mergeErr.Step)
		require.NotNil(t, result, "the merge itself completed")
		assert.Equal(t, int64(7), result.Repointed)
		assert.False(t, result.Renamed)
	})
}

func TestMergerRename(t *testing.T) {
	t.Parallel()

	t.Run("renames with trimmed name", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		err := newTestMerger(store).Rename(context.Background(), 1, "  Warmuth  ")

		require.NoError(t, err)
		assert.Equal(t, "Warmuth", store.renamedTo)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		err := newTestMerger(store).Rename(context.Background(), 1, "   ")

		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Empty(t, store.calls)
	})

	t.Run("renaming to the current name is a no-op success", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		m := newTestMerger(store)
		require.NoError(t, m.Rename(context.Background(), 1, "Warmuth"))
		require.NoError(t, m.Rename(context.Background(), 1, "Warmuth"))
		assert.Equal(t, "Warmuth", store.renamedTo)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{renameErr: domain.NewNotFoundError("publisher", "99")}
		err := newTestMerger(store).Rename(context.Background(), 99, "Warmuth")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
