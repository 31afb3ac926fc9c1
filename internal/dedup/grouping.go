package dedup

import (
	"sort"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// FindSimilarGroups groups a flat list of publishers into candidate-duplicate
// clusters. The input order is the order the store returns (by name,
// ascending); the threshold is the minimum similarity ratio for two names to
// be considered duplicates.
//
// The algorithm is a greedy single forward pass: each unprocessed publisher
// becomes an anchor and scans all later unprocessed publishers, absorbing
// those at or above the threshold as suggestions. Absorbed publishers are
// marked processed so no publisher appears as a suggestion in two groups.
// Anchors that accumulate no suggestions are not emitted and not marked
// processed; because the outer loop only advances forward, such a publisher is
// simply never grouped, which is the intended behavior when no duplicate was
// found for it.
//
// Groups are returned sorted by descending confidence (the maximum pairwise
// similarity within the group). The processed set is local to each call; the
// computation is pure and has no side effects.
//
// Complexity is O(n²) name comparisons, each O(len_a × len_b). The publisher
// set is catalog-scale (low thousands at most), so this is fine.
func FindSimilarGroups(publishers []domain.Publisher, threshold float64) []domain.SimilarityGroup {
	groups := make([]domain.SimilarityGroup, 0)
	processed := make(map[int64]bool, len(publishers))

	for i := range publishers {
		if processed[publishers[i].ID] {
			continue
		}

		anchor := publishers[i]
		var suggestions []domain.Publisher
		confidence := 0.0

		for j := i + 1; j < len(publishers); j++ {
			if processed[publishers[j].ID] {
				continue
			}

			score := Similarity(anchor.Name, publishers[j].Name)
			if score >= threshold {
				suggestions = append(suggestions, publishers[j])
				processed[publishers[j].ID] = true
				if score > confidence {
					confidence = score
				}
			}
		}

		if len(suggestions) > 0 {
			groups = append(groups, domain.SimilarityGroup{
				ID:          anchor.ID,
				Name:        anchor.Name,
				Suggestions: suggestions,
				Confidence:  confidence,
			})
			processed[anchor.ID] = true
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Confidence > groups[b].Confidence
	})

	return groups
}
