// Package csvimport parses the historical table-of-contents CSV exports into
// a layout-independent form. Each supported file is one booklet with its own
// column layout; the exports come from a spreadsheet conversion and carry
// auto-generated "Unnamed: N" headers and ragged rows, which the parser
// tolerates.
package csvimport

// ParsedWork is the layout-independent result of parsing one CSV row.
// Lifespans stay raw strings here; the importer extracts years from them.
type ParsedWork struct {
	Title            string
	Composer         string
	ComposerLifespan string
	Lyricist         string
	LyricistLifespan string
	CompositionYear  *int
	Category         string
	Key              string
	Form             string
	Publisher        string
	Notes            string
}
