package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/music-catalog-service/internal/domain"
)

func publishersFromNames(names ...string) []domain.Publisher {
	out := make([]domain.Publisher, len(names))
	for i, n := range names {
		out[i] = domain.Publisher{ID: int64(i + 1), Name: n}
	}
	return out
}

func TestFindSimilarGroups(t *testing.T) {
	t.Parallel()

	t.Run("groups near-duplicate publisher names", func(t *testing.T) {
		t.Parallel()

		publishers := publishersFromNames(
			"Norsk Musikforlag",
			"Norsk Musikkforlag",
			"Wilhelm Hansen",
		)

		groups := FindSimilarGroups(publishers, DefaultThreshold)
		require.Len(t, groups, 1)

		g := groups[0]
		assert.Equal(t, int64(1), g.ID)
		assert.Equal(t, "Norsk Musikforlag", g.Name)
		require.Len(t, g.Suggestions, 1)
		assert.Equal(t, "Norsk Musikkforlag", g.Suggestions[0].Name)
		assert.InDelta(t, 1.0-1.0/18.0, g.Confidence, 1e-9)
	})

	t.Run("threshold above 1 yields no groups", func(t *testing.T) {
		t.Parallel()

		publishers := publishersFromNames("Hals", "Hals", "Hals")
		assert.Empty(t, FindSimilarGroups(publishers, 1.1))
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FindSimilarGroups(nil, DefaultThreshold))
	})

	t.Run("no publisher appears in two groups", func(t *testing.T) {
		t.Parallel()

		publishers := publishersFromNames(
			"Carl Warmuth",
			"Carl Warmuths",
			"C. Warmuth",
			"Oluf By",
			"Oluf Bye",
		)

		groups := FindSimilarGroups(publishers, DefaultThreshold)
		seen := make(map[int64]bool)
		for _, g := range groups {
			assert.False(t, seen[g.ID], "anchor %d appears twice", g.ID)
			seen[g.ID] = true
			for _, s := range g.Suggestions {
				assert.False(t, seen[s.ID], "publisher %d appears twice", s.ID)
				seen[s.ID] = true
			}
		}
	})

	t.Run("unmatched publishers are not emitted", func(t *testing.T) {
		t.Parallel()

		publishers := publishersFromNames(
			"Breitkopf & Härtel",
			"Oluf By",
			"Oluf Bye",
		)

		groups := FindSimilarGroups(publishers, DefaultThreshold)
		require.Len(t, groups, 1)
		assert.Equal(t, "Oluf By", groups[0].Name)
	})

	t.Run("groups sorted by descending confidence", func(t *testing.T) {
		t.Parallel()

		publishers := publishersFromNames(
			"Edition Wilhelm Hansen",
			"Edition Wilhelm Hanson",
			"Carl Warmuth",
			"Carl Warmuth",
		)

		groups := FindSimilarGroups(publishers, DefaultThreshold)
		require.Len(t, groups, 2)
		// The exact-duplicate pair scores 1.0 and sorts first.
		assert.Equal(t, "Carl Warmuth", groups[0].Name)
		assert.Equal(t, 1.0, groups[0].Confidence)
		assert.GreaterOrEqual(t, groups[0].Confidence, groups[1].Confidence)
	})

	t.Run("confidence is the strongest pairwise match", func(t *testing.T) {
		t.Parallel()

		publishers := publishersFromNames(
			"Warmuth",
			"Warmuth",
			"Warmuths",
		)

		groups := FindSimilarGroups(publishers, DefaultThreshold)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Suggestions, 2)
		assert.Equal(t, 1.0, groups[0].Confidence)
	})
}
