package domain

import (
	"fmt"
	"time"
)

// ContributorRole represents how a person contributed to a work.
// These values must match the database enum contributor_role.
type ContributorRole string

const (
	RoleComposer   ContributorRole = "composer"
	RoleLyricist   ContributorRole = "lyricist"
	RoleArranger   ContributorRole = "arranger"
	RoleTextAuthor ContributorRole = "text_author"
	RoleUnknown    ContributorRole = "unknown"
)

// Valid reports whether the role is one of the known enum values.
func (r ContributorRole) Valid() bool {
	switch r {
	case RoleComposer, RoleLyricist, RoleArranger, RoleTextAuthor, RoleUnknown:
		return true
	default:
		return false
	}
}

// Category represents a named grouping of works, typically one historical
// table-of-contents booklet.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Person represents a composer, lyricist, or other contributor.
type Person struct {
	ID        int64
	FullName  string
	BirthYear *int
	DeathYear *int
	Notes     string
}

// Work represents a single musical work in the archive.
type Work struct {
	ID                int64
	Title             string
	CategoryID        *int64
	CompositionYear   *int
	CompositionYearTo *int
	KeySignature      string
	FormOrGenre       string
	Comments          string
	Rating            *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TitleKey returns the dedup key used to detect already-imported works:
// the title combined with the category it was imported into.
func (w *Work) TitleKey() string {
	var categoryID int64
	if w.CategoryID != nil {
		categoryID = *w.CategoryID
	}
	return WorkTitleKey(w.Title, categoryID)
}

// WorkTitleKey builds the title::category dedup key for a work.
func WorkTitleKey(title string, categoryID int64) string {
	return fmt.Sprintf("%s::%d", title, categoryID)
}

// WorkContributor links a person to a work in a specific role.
type WorkContributor struct {
	WorkID     int64
	PersonID   int64
	Role       ContributorRole
	SequenceNo *int
	Notes      string
}
