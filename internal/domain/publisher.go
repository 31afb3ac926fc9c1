// Package domain provides domain models and business logic for the music catalog service.
package domain

import (
	"strings"
	"time"
)

// Publisher represents a named publishing house. Publishers are the
// deduplication target of the catalog: historical table-of-contents imports
// produce many near-identical spellings of the same house.
type Publisher struct {
	// ID is the primary key for this publisher. Immutable once assigned.
	ID int64

	// Name is the display name. Mutable via rename or merge.
	Name string

	// CreatedAt records when the publisher was first created.
	CreatedAt time.Time
}

// Publication represents a published edition of a work. The publisher
// reference is nullable; merges must never leave it pointing at a publisher
// that no longer exists.
type Publication struct {
	// ID is the primary key for this publication.
	ID int64

	// WorkID references the work this publication belongs to.
	WorkID *int64

	// PublisherID references the owning publisher, if known.
	PublisherID *int64

	// PublicationYear is the year of publication, if known.
	PublicationYear *int

	// PlateNumber is the engraver's plate number printed on the score.
	PlateNumber string

	// EditionNote holds free-form notes about the edition.
	EditionNote string
}

// SimilarityGroup is a transient cluster of one anchor publisher and its
// duplicate-candidate suggestions. It is derived from a single similarity
// computation and never persisted.
type SimilarityGroup struct {
	// ID is the anchor publisher's ID.
	ID int64

	// Name is the anchor publisher's display name.
	Name string

	// Suggestions are the publishers judged similar to the anchor.
	Suggestions []Publisher

	// Confidence is the maximum pairwise similarity observed between the
	// anchor and any suggestion, in [0, 1].
	Confidence float64
}

// NormalizePublisherName trims surrounding whitespace from a publisher name.
// Returns the empty string for whitespace-only input, which callers must
// reject before any write.
func NormalizePublisherName(name string) string {
	return strings.TrimSpace(name)
}
