package layout

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// PointToMM converts a font size in points to millimetres.
const PointToMM = 25.4 / 72

// DefaultLineSpacing is the line height as a multiple of the font size.
const DefaultLineSpacing = 1.35

// Font is the subset of typography the layout depends on.
type Font struct {
	Size float64 `json:"size"` // points
	Bold bool    `json:"bold,omitempty"`
}

// LineHeight returns the height of one line of text in millimetres.
func (f Font) LineHeight() float64 {
	return f.Size * PointToMM * DefaultLineSpacing
}

// FontMetrics measures text for a font. Widths are in millimetres.
//
// Implementations must be deterministic: the same string and font always
// produce the same width. Visual width is not proportional to the number
// of characters for proportional fonts or for East Asian text, so the
// measurer never guesses from character counts.
type FontMetrics interface {
	StringWidth(s string, font Font) float64
}

// HelveticaMetrics measures text with the Adobe Helvetica and Helvetica-Bold
// advance widths, which are also the metrics of the PDF core font the
// default renderer embeds. Characters outside printable ASCII are sized by
// their East Asian width class: wide and fullwidth characters take a full
// em, combining marks take nothing, anything else takes the width of a digit.
type HelveticaMetrics struct{}

// Helvetica advance widths in 1/1000 em for code points 32..126.
var helveticaWidths = [95]uint16{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // ' '../
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0..?
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @..O
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // P.._
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // `..o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // p..~
}

// Helvetica-Bold advance widths in 1/1000 em for code points 32..126.
var helveticaBoldWidths = [95]uint16{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

const (
	emUnits          = 1000
	defaultRuneWidth = 556
)

// StringWidth implements FontMetrics.
func (HelveticaMetrics) StringWidth(s string, font Font) float64 {
	s = norm.NFC.String(s)
	total := 0
	for _, r := range s {
		total += runeUnits(r, font.Bold)
	}
	return float64(total) / emUnits * font.Size * PointToMM
}

// runeUnits returns the advance of r in 1/1000 em.
func runeUnits(r rune, bold bool) int {
	if r >= 32 && r <= 126 {
		if bold {
			return int(helveticaBoldWidths[r-32])
		}
		return int(helveticaWidths[r-32])
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.IsControl(r) {
		return 0
	}
	if isWide(r) {
		return emUnits
	}
	return defaultRuneWidth
}

// isWide reports whether r occupies a full em in East Asian typography.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}
