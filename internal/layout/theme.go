package layout

import (
	"fmt"
	"strings"

	"github.com/nao1215/seoreport/internal/model"
)

// Theme holds the colors and font sizes the paginator draws with.
// It changes appearance only; every measurement still flows through the
// FontMetrics, so a theme can never break the layout rules.
type Theme struct {
	Primary RGB // banner, headings, accent bars
	Text    RGB // body text
	Muted   RGB // captions and footer
	Border  RGB // separators, table borders and bar tracks
	Surface RGB // info box and table header background
	OnFill  RGB // text drawn on top of a filled banner or badge

	Good     RGB
	Warning  RGB
	Critical RGB

	GoodTint     RGB
	WarningTint  RGB
	CriticalTint RGB

	TitleSize   float64
	HeadingSize float64
	BodySize    float64
	SmallSize   float64
	BadgeSize   float64
}

// DefaultTheme returns the colors of the original report stylesheet.
func DefaultTheme() Theme {
	return Theme{
		Primary: RGB{26, 77, 122},
		Text:    RGB{26, 35, 50},
		Muted:   RGB{90, 108, 125},
		Border:  RGB{225, 232, 237},
		Surface: RGB{248, 249, 250},
		OnFill:  RGB{255, 255, 255},

		Good:     RGB{39, 174, 96},
		Warning:  RGB{243, 156, 18},
		Critical: RGB{231, 76, 60},

		GoodTint:     RGB{212, 237, 218},
		WarningTint:  RGB{255, 243, 205},
		CriticalTint: RGB{255, 238, 238},

		TitleSize:   20,
		HeadingSize: 14,
		BodySize:    10,
		SmallSize:   8,
		BadgeSize:   28,
	}
}

// Color returns the foreground color of a severity bucket.
func (t Theme) Color(s model.Severity) RGB {
	switch s {
	case model.SeverityGood:
		return t.Good
	case model.SeverityWarning:
		return t.Warning
	default:
		return t.Critical
	}
}

// Tint returns the light background color of a severity bucket.
func (t Theme) Tint(s model.Severity) RGB {
	switch s {
	case model.SeverityGood:
		return t.GoodTint
	case model.SeverityWarning:
		return t.WarningTint
	default:
		return t.CriticalTint
	}
}

// ScoreColor maps a score straight to its severity color.
func (t Theme) ScoreColor(score int) RGB {
	return t.Color(model.ScoreSeverity(score))
}

func (t Theme) validate() error {
	sizes := []struct {
		name string
		size float64
	}{
		{"title", t.TitleSize},
		{"heading", t.HeadingSize},
		{"body", t.BodySize},
		{"small", t.SmallSize},
		{"badge", t.BadgeSize},
	}
	for _, s := range sizes {
		if s.size <= 0 {
			return newError("Theme", fmt.Errorf("%w: %s font size %g", ErrInvalidLayoutConstraint, s.name, s.size))
		}
	}
	return nil
}

// Labels are the fixed strings printed by the paginator. The engine never
// translates them; callers supply their own for other languages.
type Labels struct {
	Title          string `json:"title" yaml:"title"`
	Subtitle       string `json:"subtitle" yaml:"subtitle"`
	Site           string `json:"site" yaml:"site"`
	Keywords       string `json:"keywords" yaml:"keywords"`
	Date           string `json:"date" yaml:"date"`
	OverallScore   string `json:"overallScore" yaml:"overallScore"`
	OutOf          string `json:"outOf" yaml:"outOf"`
	CategoryScores string `json:"categoryScores" yaml:"categoryScores"`
	Category       string `json:"category" yaml:"category"`
	Score          string `json:"score" yaml:"score"`
	CriticalIssues string `json:"criticalIssues" yaml:"criticalIssues"`
	Suggestions    string `json:"suggestions" yaml:"suggestions"`
	Impact         string `json:"impact" yaml:"impact"`
	QuickWins      string `json:"quickWins" yaml:"quickWins"`
	Generator      string `json:"generator" yaml:"generator"`

	// PageFormat is a fmt format receiving the 1-based page number and the
	// page count.
	PageFormat string `json:"pageFormat" yaml:"pageFormat"`

	High   string `json:"high" yaml:"high"`
	Medium string `json:"medium" yaml:"medium"`
	Low    string `json:"low" yaml:"low"`
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		Title:          "SEO Analysis Report",
		Subtitle:       "Website search engine optimization review",
		Site:           "Website",
		Keywords:       "Target keywords",
		Date:           "Analysis date",
		OverallScore:   "Overall SEO Score",
		OutOf:          "out of 100",
		CategoryScores: "Category Scores",
		Category:       "Category",
		Score:          "Score",
		CriticalIssues: "Critical Issues",
		Suggestions:    "Improvement Suggestions",
		Impact:         "Expected impact",
		QuickWins:      "Quick Wins",
		Generator:      "Generated by seoreport",
		PageFormat:     "Page %d / %d",
		High:           "High",
		Medium:         "Medium",
		Low:            "Low",
	}
}

// Merge returns l with every empty field taken from fallback.
func (l Labels) Merge(fallback Labels) Labels {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Labels{
		Title:          pick(l.Title, fallback.Title),
		Subtitle:       pick(l.Subtitle, fallback.Subtitle),
		Site:           pick(l.Site, fallback.Site),
		Keywords:       pick(l.Keywords, fallback.Keywords),
		Date:           pick(l.Date, fallback.Date),
		OverallScore:   pick(l.OverallScore, fallback.OverallScore),
		OutOf:          pick(l.OutOf, fallback.OutOf),
		CategoryScores: pick(l.CategoryScores, fallback.CategoryScores),
		Category:       pick(l.Category, fallback.Category),
		Score:          pick(l.Score, fallback.Score),
		CriticalIssues: pick(l.CriticalIssues, fallback.CriticalIssues),
		Suggestions:    pick(l.Suggestions, fallback.Suggestions),
		Impact:         pick(l.Impact, fallback.Impact),
		QuickWins:      pick(l.QuickWins, fallback.QuickWins),
		Generator:      pick(l.Generator, fallback.Generator),
		PageFormat:     pick(l.PageFormat, fallback.PageFormat),
		High:           pick(l.High, fallback.High),
		Medium:         pick(l.Medium, fallback.Medium),
		Low:            pick(l.Low, fallback.Low),
	}
}

// Priority returns the label of a priority.
func (l Labels) Priority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return l.High
	case model.PriorityMedium:
		return l.Medium
	default:
		return l.Low
	}
}

// PageNumber formats the footer page counter.
func (l Labels) PageNumber(page, pages int) string {
	return fmt.Sprintf(l.PageFormat, page, pages)
}

// ValidatePageFormat checks that the page format consumes exactly the page
// number and the page count. An empty format is valid; it falls back to
// the default when the labels are merged.
func (l Labels) ValidatePageFormat() error {
	if l.PageFormat == "" {
		return nil
	}
	if out := l.PageNumber(1, 2); strings.Contains(out, "%!") {
		return fmt.Errorf("%w: %q formats as %q", ErrInvalidPageFormat, l.PageFormat, out)
	}
	return nil
}
