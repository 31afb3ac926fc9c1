package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/music-catalog-service/internal/domain"
)

func TestRejectedSetFilter(t *testing.T) {
	t.Parallel()

	groups := []domain.SimilarityGroup{
		{
			ID:   1,
			Name: "Norsk Musikforlag",
			Suggestions: []domain.Publisher{
				{ID: 2, Name: "Norsk Musikkforlag"},
				{ID: 3, Name: "Norsk Musiksforlag"},
			},
			Confidence: 0.94,
		},
		{
			ID:          4,
			Name:        "Oluf By",
			Suggestions: []domain.Publisher{{ID: 5, Name: "Oluf Bye"}},
			Confidence:  0.875,
		},
	}

	t.Run("empty set keeps everything", func(t *testing.T) {
		t.Parallel()

		filtered := NewRejectedSet().Filter(groups)
		assert.Equal(t, groups, filtered)
	})

	t.Run("drops only the dismissed suggestion", func(t *testing.T) {
		t.Parallel()

		rejected := NewRejectedSet()
		rejected.Add(1, 3)

		filtered := rejected.Filter(groups)
		require.Len(t, filtered, 2)
		require.Len(t, filtered[0].Suggestions, 1)
		assert.Equal(t, int64(2), filtered[0].Suggestions[0].ID)
	})

	t.Run("drops a group whose suggestions are all dismissed", func(t *testing.T) {
		t.Parallel()

		rejected := NewRejectedSet()
		rejected.Add(4, 5)

		filtered := rejected.Filter(groups)
		require.Len(t, filtered, 1)
		assert.Equal(t, int64(1), filtered[0].ID)
	})

	t.Run("rejection is directional", func(t *testing.T) {
		t.Parallel()

		rejected := NewRejectedSet()
		rejected.Add(5, 4)

		assert.False(t, rejected.Contains(4, 5))
		assert.Len(t, rejected.Filter(groups), 2)
	})
}
