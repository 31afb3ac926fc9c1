package dedup

import "github.com/helixir/music-catalog-service/internal/domain"

// pair identifies a dismissed (anchor, suggestion) combination.
type pair struct {
	anchorID     int64
	suggestionID int64
}

// RejectedSet records suggestion pairs a reviewer has dismissed so the same
// pairing is not surfaced again on subsequent duplicate scans.
type RejectedSet struct {
	pairs map[pair]bool
}

// NewRejectedSet creates an empty RejectedSet.
func NewRejectedSet() *RejectedSet {
	return &RejectedSet{pairs: make(map[pair]bool)}
}

// Add dismisses the pairing of suggestionID under anchorID. The pairing is
// stored directionally; rejecting (a, b) does not reject (b, a), matching how
// groups are anchored on the earlier publisher.
func (r *RejectedSet) Add(anchorID, suggestionID int64) {
	r.pairs[pair{anchorID: anchorID, suggestionID: suggestionID}] = true
}

// Contains reports whether the pairing has been dismissed.
func (r *RejectedSet) Contains(anchorID, suggestionID int64) bool {
	return r.pairs[pair{anchorID: anchorID, suggestionID: suggestionID}]
}

// Len returns the number of dismissed pairings.
func (r *RejectedSet) Len() int {
	return len(r.pairs)
}

// Filter removes dismissed suggestions from each group and drops groups whose
// suggestion list becomes empty. Confidence is not recomputed; it still
// reflects the strongest match the scan originally found.
func (r *RejectedSet) Filter(groups []domain.SimilarityGroup) []domain.SimilarityGroup {
	if len(r.pairs) == 0 {
		return groups
	}

	filtered := make([]domain.SimilarityGroup, 0, len(groups))
	for _, g := range groups {
		kept := make([]domain.Publisher, 0, len(g.Suggestions))
		for _, s := range g.Suggestions {
			if !r.Contains(g.ID, s.ID) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			continue
		}
		g.Suggestions = kept
		filtered = append(filtered, g)
	}
	return filtered
}
