package csvimport

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lifespanPattern  = regexp.MustCompile(`(\d{4})\s*-\s*(\d{4})`)
	birthOnlyPattern = regexp.MustCompile(`(\d{4})\s*-\s*$`)
	yearPattern      = regexp.MustCompile(`\d{4}`)
)

// Lifespan holds the years extracted from a printed lifespan such as
// "1859 - 1883" or "(1905 - 1977)". DeathYear is nil for a birth-only
// lifespan like "1859 -".
type Lifespan struct {
	BirthYear *int
	DeathYear *int
}

// ExtractLifespan parses a printed lifespan. Returns nil when the text holds
// no recognizable year pair or trailing birth year.
func ExtractLifespan(text string) *Lifespan {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if m := lifespanPattern.FindStringSubmatch(text); m != nil {
		birth, _ := strconv.Atoi(m[1])
		death, _ := strconv.Atoi(m[2])
		return &Lifespan{BirthYear: &birth, DeathYear: &death}
	}

	if m := birthOnlyPattern.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		birth, _ := strconv.Atoi(m[1])
		return &Lifespan{BirthYear: &birth}
	}

	return nil
}

// ExtractYear pulls the first four-digit year out of free text such as
// "ca. 1905" or "komponert 1898". Returns nil when no year is present.
func ExtractYear(text string) *int {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m := yearPattern.FindString(text)
	if m == "" {
		return nil
	}
	year, _ := strconv.Atoi(m)
	return &year
}
