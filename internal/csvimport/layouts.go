package csvimport

import "fmt"

// Layout identifies one of the historical CSV exports. Each export is one
// booklet with its own column layout and its own fixed category name.
type Layout string

const (
	LayoutAllsanger         Layout = "Allsanger"
	LayoutPerLasson         Layout = "Per_Lasson"
	LayoutUtenlandsk        Layout = "Utenlandsk_popul_rmusikk"
	LayoutForskjellig       Layout = "Forskjellig"
	LayoutNoter1905         Layout = "1905-noter"
	LayoutForskjelligeNoter Layout = "Forskjellige_noter"
	LayoutPosca             Layout = "Posca"
	LayoutHefter            Layout = "Hefter"
)

// Layouts returns all supported layouts in import order.
func Layouts() []Layout {
	return []Layout{
		LayoutAllsanger,
		LayoutPerLasson,
		LayoutUtenlandsk,
		LayoutForskjellig,
		LayoutNoter1905,
		LayoutForskjelligeNoter,
		LayoutPosca,
		LayoutHefter,
	}
}

// ParseLayout resolves a layout from its name.
func ParseLayout(name string) (Layout, error) {
	for _, l := range Layouts() {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown CSV layout: %q", name)
}

// FileName returns the CSV file name for the layout.
func (l Layout) FileName() string {
	return string(l) + ".csv"
}

// Category returns the fixed category name works from this layout belong to.
func (l Layout) Category() string {
	switch l {
	case LayoutAllsanger:
		return "Allsanger"
	case LayoutPerLasson:
		return "Per Lasson"
	case LayoutUtenlandsk:
		return "Utenlandsk populærmusikk"
	case LayoutForskjellig:
		return "Forskjellig"
	case LayoutNoter1905:
		return "1905-noter"
	case LayoutForskjelligeNoter:
		return "Forskjellige noter"
	case LayoutPosca:
		return "Posca"
	case LayoutHefter:
		return "Hefter"
	default:
		return string(l)
	}
}

// The row structs below mirror the spreadsheet exports column for column.
// Header names are exactly as exported, including the auto-generated
// "Unnamed: N" headers for columns the spreadsheet left untitled.

type allsangerRow struct {
	Title            string `csv:"Tittel"`
	Key              string `csv:"Toneart"`
	Composer         string `csv:"Komponist"`
	ComposerLifespan string `csv:"Unnamed: 8"`
	Lyricist         string `csv:"Tekstforfatter"`
	LyricistLifespan string `csv:"Unnamed: 11"`
	Pages            string `csv:"Antall sider"`
}

type perLassonRow struct {
	Number           string `csv:"Unnamed: 1"`
	Title            string `csv:"Melodi"`
	Composer         string `csv:"Komponist"`
	ComposerLifespan string `csv:"Levde når"`
	Lyricist         string `csv:"Lyrikk"`
	LyricistLifespan string `csv:"Unnamed: 6"`
	Composed         string `csv:"Når komponert"`
}

type utenlandskRow struct {
	Title            string `csv:"Melodi"`
	Composer         string `csv:"Komponist"`
	ComposerLifespan string `csv:"Levde når"`
	Lyricist         string `csv:"Lyrikk"`
	LyricistLifespan string `csv:"Levde når.1"`
	Composed         string `csv:"Når komponert"`
	SongInfo         string `csv:"Sanginfo"`
}

type forskjelligRow struct {
	Title            string `csv:"Unnamed: 1"`
	Composer         string `csv:"Komponist"`
	ComposerLifespan string `csv:"Unnamed: 3"`
	Lyricist         string `csv:"Evt. Tekstforfatter"`
	LyricistLifespan string `csv:"Unnamed: 5"`
	Composed         string `csv:"Komponert"`
	Source           string `csv:"Kilde"`
}

type noter1905Row struct {
	Composer  string `csv:"1905-noter. "`
	Title     string `csv:"Unnamed: 1"`
	Publisher string `csv:"Unnamed: 2"`
	Notes     string `csv:"Unnamed: 4"`
}

type forskjelligeNoterRow struct {
	Title            string `csv:"Tittel"`
	Form             string `csv:"Unnamed: 2"`
	Key              string `csv:"Unnamed: 3"`
	Composer         string `csv:"Komponist"`
	ComposerLifespan string `csv:"Unnamed: 5"`
	Lyricist         string `csv:"Tekstforfatter"`
	LyricistLifespan string `csv:"Unnamed: 8"`
	Composed         string `csv:"Unnamed: 9"`
}

type poscaRow struct {
	Title            string `csv:"Unnamed: 2"`
	Composer         string `csv:"Unnamed: 3"`
	ComposerLifespan string `csv:"Unnamed: 4"`
	Lyricist         string `csv:"Unnamed: 5"`
	LyricistLifespan string `csv:"Unnamed: 6"`
	Composed         string `csv:"Unnamed: 7"`
	Publisher        string `csv:"Unnamed: 12"`
}

type hefterRow struct {
	Title            string `csv:"Unnamed: 1"`
	Composer         string `csv:"Unnamed: 2"`
	ComposerLifespan string `csv:"Unnamed: 3"`
	Notes            string `csv:"Unnamed: 4"`
}
