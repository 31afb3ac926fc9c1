// Package dedup provides publisher deduplication for the music catalog:
// fuzzy matching of publisher names into candidate-duplicate groups, and a
// merge coordinator that collapses a duplicate into its survivor without
// leaving dangling publication references.
package dedup

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum similarity ratio required to treat two
// publisher names as duplicate candidates when no threshold is configured.
const DefaultThreshold = 0.7

// Similarity computes a normalized similarity ratio in [0, 1] between two
// publisher names. The comparison is case-insensitive: both inputs are
// lower-cased before the distance computation. The score is
//
//	1 - editDistance(a, b) / max(len(a), len(b))
//
// where editDistance is plain Levenshtein (insert, delete, substitute, each
// cost 1; no transposition, so adjacent-character swaps score lower than a
// human might expect). Two empty strings are identical and score 1.
//
// Similarity(x, x) == 1 for any x, and the function is symmetric.
func Similarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)

	maxLen := utf8.RuneCountInString(la)
	if n := utf8.RuneCountInString(lb); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}

	dist := editDistance(la, lb)
	return 1 - float64(dist)/float64(maxLen)
}

// editDistance returns the plain Levenshtein distance between two strings,
// computed over runes.
func editDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}
