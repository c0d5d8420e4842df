package layout

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Measurer wraps text into lines that fit a width.
// It is stateless apart from its metrics and safe for concurrent use when
// the metrics are.
type Measurer struct {
	metrics FontMetrics
}

// NewMeasurer creates a Measurer. A nil metrics uses HelveticaMetrics.
func NewMeasurer(metrics FontMetrics) *Measurer {
	if metrics == nil {
		metrics = HelveticaMetrics{}
	}
	return &Measurer{metrics: metrics}
}

// Width returns the rendered width of s.
func (m *Measurer) Width(s string, font Font) float64 {
	return m.metrics.StringWidth(s, font)
}

// Wrap breaks text into lines no wider than maxWidth.
//
// Lines break at whitespace and between East Asian wide characters. A
// token wider than maxWidth on its own is broken between characters rather
// than overflowing. Explicit newlines always start a new line. Empty text
// yields a single empty line.
func (m *Measurer) Wrap(text string, font Font, maxWidth float64) ([]string, error) {
	if maxWidth <= 0 {
		return nil, newError("Wrap", fmt.Errorf("%w: max width %g", ErrInvalidLayoutConstraint, maxWidth))
	}
	if font.Size <= 0 {
		return nil, newError("Wrap", fmt.Errorf("%w: font size %g", ErrInvalidLayoutConstraint, font.Size))
	}

	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, m.wrapParagraph(para, font, maxWidth)...)
	}
	return lines, nil
}

// Height returns the height of text wrapped to maxWidth.
func (m *Measurer) Height(text string, font Font, maxWidth float64) (float64, error) {
	lines, err := m.Wrap(text, font, maxWidth)
	if err != nil {
		return 0, err
	}
	return float64(len(lines)) * font.LineHeight(), nil
}

// token is a breakable unit of text. spaced records whether whitespace
// separated it from the previous token.
type token struct {
	text   string
	spaced bool
}

// tokenize splits a paragraph into words and single wide characters.
// Combining marks stay attached to the character before them.
func tokenize(s string) []token {
	var (
		tokens  []token
		current strings.Builder
		spaced  bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, token{text: current.String(), spaced: spaced})
			current.Reset()
			spaced = false
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
			spaced = true
		case unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r):
			current.WriteRune(r)
		case isWide(r):
			flush()
			current.WriteRune(r)
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// wrapParagraph greedily fills lines with tokens.
func (m *Measurer) wrapParagraph(para string, font Font, maxWidth float64) []string {
	tokens := tokenize(para)
	if len(tokens) == 0 {
		return []string{""}
	}

	var (
		lines []string
		line  strings.Builder
		lineW float64
	)
	spaceW := m.metrics.StringWidth(" ", font)
	emit := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineW = 0
	}

	for _, tok := range tokens {
		tokW := m.metrics.StringWidth(tok.text, font)

		if line.Len() > 0 {
			sep, sepW := "", 0.0
			if tok.spaced {
				sep, sepW = " ", spaceW
			}
			if lineW+sepW+tokW <= maxWidth {
				line.WriteString(sep)
				line.WriteString(tok.text)
				lineW += sepW + tokW
				continue
			}
			emit()
		}

		if tokW <= maxWidth {
			line.WriteString(tok.text)
			lineW = tokW
			continue
		}

		// The token alone is too wide: break it between characters.
		for _, chunk := range m.hardBreak(tok.text, font, maxWidth) {
			if line.Len() > 0 {
				emit()
			}
			line.WriteString(chunk)
			lineW = m.metrics.StringWidth(chunk, font)
		}
	}
	if line.Len() > 0 {
		emit()
	}
	return lines
}

// hardBreak splits a single token into chunks no wider than maxWidth.
// Every chunk holds at least one character, so a glyph wider than the
// column still makes progress.
func (m *Measurer) hardBreak(s string, font Font, maxWidth float64) []string {
	var (
		chunks  []string
		current []rune
		curW    float64
	)
	for _, r := range s {
		rw := m.metrics.StringWidth(string(r), font)
		isMark := unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r)
		if len(current) > 0 && !isMark && curW+rw > maxWidth {
			chunks = append(chunks, string(current))
			current = current[:0]
			curW = 0
		}
		current = append(current, r)
		curW += rw
	}
	if len(current) > 0 {
		chunks = append(chunks, string(current))
	}
	return chunks
}
