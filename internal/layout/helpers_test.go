package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/seoreport/internal/model"
)

// monoMetrics gives every rune a width of 2mm regardless of font, which
// keeps expected widths easy to compute by hand.
type monoMetrics struct{}

func (monoMetrics) StringWidth(s string, _ Font) float64 {
	return 2 * float64(utf8.RuneCountInString(s))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// scenarioReport returns a report with 4 categories, no critical issues,
// one suggestion per priority and 2 quick wins.
func scenarioReport() *model.Report {
	return &model.Report{
		SiteURL:        "https://example.com",
		TargetKeywords: "seo audit, site speed",
		Date:           "2026-10-19",
		OverallScore:   75,
		Scores: model.Scores{
			{Name: "Technical SEO", Score: 82},
			{Name: "Content Quality", Score: 74},
			{Name: "Link Structure", Score: 59},
			{Name: "User Experience", Score: 90},
		},
		Suggestions: []model.Suggestion{
			{
				Category:    "Technical SEO",
				Title:       "Add a sitemap",
				Description: "Publish an XML sitemap and reference it from robots.txt so crawlers discover every page.",
				Priority:    model.PriorityHigh,
				Impact:      "Faster and more complete indexing",
			},
			{
				Category:    "Content Quality",
				Title:       "Expand thin pages",
				Description: "Several landing pages carry fewer than 200 words. Add unique copy that answers the questions visitors search for.",
				Priority:    model.PriorityMedium,
				Impact:      "Better rankings for long-tail queries",
			},
			{
				Category:    "User Experience",
				Title:       "Compress hero images",
				Description: "Serve images in modern formats and size them for the viewport.",
				Priority:    model.PriorityLow,
				Impact:      "Lower largest contentful paint",
			},
		},
		QuickWins: []string{
			"Add meta descriptions to the top 10 pages",
			"Fix the two broken internal links on the home page",
		},
	}
}

// longReport returns a report whose suggestions need several pages.
func longReport(suggestions int) *model.Report {
	r := scenarioReport()
	r.CriticalIssues = []string{"Home page returns 404 for mobile user agents", "Duplicate title tags"}
	r.Suggestions = nil
	for i := range suggestions {
		r.Suggestions = append(r.Suggestions, model.Suggestion{
			Category:    "Content",
			Title:       "Suggestion " + strings.Repeat("x", i%7),
			Description: strings.Repeat("Improve the internal linking between related articles. ", 3+i%4),
			Priority:    model.Priority(i % 3),
			Impact:      "Moderate",
		})
	}
	return r
}
