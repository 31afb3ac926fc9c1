package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// paddedReader wraps a csv.Reader and pads every record to the header width.
// The historical exports have ragged rows where trailing empty columns were
// dropped, which gocsv otherwise rejects.
type paddedReader struct {
	r     *csv.Reader
	width int
}

func newPaddedReader(r io.Reader) *paddedReader {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return &paddedReader{r: cr}
}

func (p *paddedReader) Read() ([]string, error) {
	record, err := p.r.Read()
	if err != nil {
		return nil, err
	}
	if p.width == 0 {
		// First record is the header row and fixes the width.
		p.width = len(record)
		return record, nil
	}
	for len(record) < p.width {
		record = append(record, "")
	}
	return record, nil
}

func (p *paddedReader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := p.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Parse reads one CSV export in the given layout and returns the parsed works.
// Rows with an empty title are skipped.
func Parse(layout Layout, r io.Reader) ([]ParsedWork, error) {
	var works []ParsedWork
	var err error

	switch layout {
	case LayoutAllsanger:
		works, err = parseRows(r, convertAllsanger)
	case LayoutPerLasson:
		works, err = parseRows(r, convertPerLasson)
	case LayoutUtenlandsk:
		works, err = parseRows(r, convertUtenlandsk)
	case LayoutForskjellig:
		works, err = parseRows(r, convertForskjellig)
	case LayoutNoter1905:
		works, err = parseRows(r, convertNoter1905)
	case LayoutForskjelligeNoter:
		works, err = parseRows(r, convertForskjelligeNoter)
	case LayoutPosca:
		works, err = parseRows(r, convertPosca)
	case LayoutHefter:
		works, err = parseRows(r, convertHefter)
	default:
		return nil, fmt.Errorf("unknown CSV layout: %q", layout)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", layout, err)
	}
	return works, nil
}

func parseRows[T any](r io.Reader, convert func(*T) ParsedWork) ([]ParsedWork, error) {
	var rows []*T
	if err := gocsv.UnmarshalCSV(newPaddedReader(r), &rows); err != nil {
		return nil, err
	}

	works := make([]ParsedWork, 0, len(rows))
	for _, row := range rows {
		work := convert(row)
		work.Title = strings.TrimSpace(work.Title)
		if work.Title == "" {
			continue
		}
		work.Composer = strings.TrimSpace(work.Composer)
		work.Lyricist = strings.TrimSpace(work.Lyricist)
		work.Publisher = strings.TrimSpace(work.Publisher)
		works = append(works, work)
	}
	return works, nil
}

func convertAllsanger(row *allsangerRow) ParsedWork {
	pages := strings.TrimSpace(row.Pages)
	if pages == "" {
		pages = "Unknown"
	}
	return ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Lyricist:         row.Lyricist,
		LyricistLifespan: row.LyricistLifespan,
		Category:         LayoutAllsanger.Category(),
		Key:              strings.TrimSpace(row.Key),
		Notes:            "Pages: " + pages,
	}
}

func convertPerLasson(row *perLassonRow) ParsedWork {
	work := ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Lyricist:         row.Lyricist,
		LyricistLifespan: row.LyricistLifespan,
		CompositionYear:  ExtractYear(row.Composed),
		Category:         LayoutPerLasson.Category(),
	}
	if number := strings.TrimSpace(row.Number); number != "" {
		work.Notes = "No: " + number
	}
	return work
}

func convertUtenlandsk(row *utenlandskRow) ParsedWork {
	return ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Lyricist:         row.Lyricist,
		LyricistLifespan: row.LyricistLifespan,
		CompositionYear:  ExtractYear(row.Composed),
		Category:         LayoutUtenlandsk.Category(),
		Notes:            strings.TrimSpace(row.SongInfo),
	}
}

func convertForskjellig(row *forskjelligRow) ParsedWork {
	return ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Lyricist:         row.Lyricist,
		LyricistLifespan: row.LyricistLifespan,
		CompositionYear:  ExtractYear(row.Composed),
		Category:         LayoutForskjellig.Category(),
		Notes:            strings.TrimSpace(row.Source),
	}
}

func convertNoter1905(row *noter1905Row) ParsedWork {
	return ParsedWork{
		Title:     row.Title,
		Composer:  row.Composer,
		Category:  LayoutNoter1905.Category(),
		Publisher: row.Publisher,
		Notes:     strings.TrimSpace(row.Notes),
	}
}

func convertForskjelligeNoter(row *forskjelligeNoterRow) ParsedWork {
	return ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Lyricist:         row.Lyricist,
		LyricistLifespan: row.LyricistLifespan,
		CompositionYear:  ExtractYear(row.Composed),
		Category:         LayoutForskjelligeNoter.Category(),
		Key:              strings.TrimSpace(row.Key),
		Form:             strings.TrimSpace(row.Form),
	}
}

func convertPosca(row *poscaRow) ParsedWork {
	return ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Lyricist:         row.Lyricist,
		LyricistLifespan: row.LyricistLifespan,
		CompositionYear:  ExtractYear(row.Composed),
		Category:         LayoutPosca.Category(),
		Publisher:        row.Publisher,
	}
}

func convertHefter(row *hefterRow) ParsedWork {
	return ParsedWork{
		Title:            row.Title,
		Composer:         row.Composer,
		ComposerLifespan: row.ComposerLifespan,
		Category:         LayoutHefter.Category(),
		Notes:            strings.TrimSpace(row.Notes),
	}
}
