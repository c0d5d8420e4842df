package layout

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/seoreport/internal/model"
)

// contentSections returns the section order without footers.
func contentSections(res *Result) []string {
	var out []string
	for _, s := range res.Sections() {
		if s != SectionFooter {
			out = append(out, s)
		}
	}
	return out
}

func TestRenderScenario(t *testing.T) {
	t.Parallel()

	res, err := New().Render(scenarioReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Pages < 1 || res.Pages > 2 {
		t.Fatalf("expected 1 or 2 pages, got %d", res.Pages)
	}

	want := []string{
		SectionCover,
		SectionSiteInfo,
		SectionOverallScore,
		SectionCategoryScores,
		SectionSuggestion,
		SectionQuickWins,
	}
	if got := contentSections(res); !slices.Equal(got, want) {
		t.Errorf("expected sections %v, got %v", want, got)
	}
	if n := len(res.Blocks(SectionSuggestion)); n != 3 {
		t.Errorf("expected 3 suggestion cards, got %d", n)
	}

	// Footers: one per page, each reporting the final page count.
	if n := len(res.Blocks(SectionFooter)); n != res.Pages {
		t.Errorf("expected %d footers, got %d", res.Pages, n)
	}
	for page := range res.Pages {
		label := fmt.Sprintf("Page %d / %d", page+1, res.Pages)
		found := false
		for _, in := range res.OnPage(page) {
			if in.Section == SectionFooter && in.Text == label {
				found = true
			}
		}
		if !found {
			t.Errorf("page %d: expected footer %q", page, label)
		}
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	t.Parallel()

	t.Run("no critical issues", func(t *testing.T) {
		t.Parallel()

		res, err := New().Render(scenarioReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slices.Contains(res.Sections(), SectionCriticalIssues) {
			t.Error("expected the critical-issues section to be omitted")
		}
	})

	t.Run("critical issues present", func(t *testing.T) {
		t.Parallel()

		r := scenarioReport()
		r.CriticalIssues = []string{"Missing title tags", "Blocked by robots.txt"}
		res, err := New().Render(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sections := contentSections(res)
		idx := slices.Index(sections, SectionCriticalIssues)
		if idx != slices.Index(sections, SectionCategoryScores)+1 {
			t.Errorf("expected critical-issues right after category-scores, got %v", sections)
		}
		if n := len(res.Blocks(SectionCriticalIssues)); n != 1 {
			t.Errorf("expected one atomic block, got %d", n)
		}
	})

	t.Run("no quick wins or suggestions", func(t *testing.T) {
		t.Parallel()

		r := scenarioReport()
		r.QuickWins = nil
		r.Suggestions = []model.Suggestion{}
		res, err := New().Render(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, s := range []string{SectionQuickWins, SectionSuggestion} {
			if slices.Contains(res.Sections(), s) {
				t.Errorf("expected %s to be omitted", s)
			}
		}
	})
}

func TestRenderMultiPage(t *testing.T) {
	t.Parallel()

	res, err := New().Render(longReport(25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pages < 2 {
		t.Fatalf("expected at least 2 pages, got %d", res.Pages)
	}

	t.Run("page indices are in range", func(t *testing.T) {
		t.Parallel()

		for i, in := range res.Instructions {
			if in.Page < 0 || in.Page >= res.Pages {
				t.Fatalf("instruction %d: page %d out of range [0,%d)", i, in.Page, res.Pages)
			}
		}
	})

	t.Run("instructions are ordered by page", func(t *testing.T) {
		t.Parallel()

		for i := 1; i < len(res.Instructions); i++ {
			if res.Instructions[i].Page < res.Instructions[i-1].Page {
				t.Fatalf("instruction %d goes back from page %d to %d",
					i, res.Instructions[i-1].Page, res.Instructions[i].Page)
			}
		}
	})

	t.Run("y is monotonic within a page", func(t *testing.T) {
		t.Parallel()

		for page := range res.Pages {
			last := -1.0
			for _, in := range res.OnPage(page) {
				if in.Y < last {
					t.Fatalf("page %d: %s %s at y=%f after y=%f", page, in.Section, in.Kind, in.Y, last)
				}
				last = in.Y
			}
		}
	})

	t.Run("suggestion cards are atomic", func(t *testing.T) {
		t.Parallel()

		for _, block := range res.Blocks(SectionSuggestion) {
			page := -1
			for _, in := range res.Instructions {
				if in.Block != block {
					continue
				}
				if page == -1 {
					page = in.Page
				}
				if in.Page != page {
					t.Fatalf("block %d spans pages %d and %d", block, page, in.Page)
				}
			}
		}
	})

	t.Run("content stays above the bottom margin", func(t *testing.T) {
		t.Parallel()

		bottom := DefaultGeometry().ContentBottom()
		for _, in := range res.Instructions {
			if in.Section != SectionFooter && in.Bottom() > bottom+1e-9 {
				t.Fatalf("%s %s ends at %f below %f", in.Section, in.Kind, in.Bottom(), bottom)
			}
		}
	})

	t.Run("every page has a footer", func(t *testing.T) {
		t.Parallel()

		for page := range res.Pages {
			on := res.OnPage(page)
			if len(on) == 0 || on[len(on)-1].Section != SectionFooter {
				t.Errorf("page %d: expected content followed by footer", page)
			}
		}
	})
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	p := New()
	first, err := p.Render(longReport(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Render(longReport(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical results")
	}

	fp1, err := first.Fingerprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp2, err := second.Fingerprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp1 != fp2 {
		t.Errorf("expected equal fingerprints, got %s and %s", fp1, fp2)
	}
	if len(fp1) != 64 {
		t.Errorf("expected a 64 character hex digest, got %q", fp1)
	}
}

func TestRenderConcurrent(t *testing.T) {
	t.Parallel()

	p := New()
	want, err := p.Render(longReport(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFP, err := want.Fingerprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	fps := make([]string, 8)
	errs := make([]error, 8)
	for i := range fps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Render(longReport(8))
			if err != nil {
				errs[i] = err
				return
			}
			fps[i], errs[i] = res.Fingerprint()
		}()
	}
	wg.Wait()

	for i := range fps {
		if errs[i] != nil {
			t.Fatalf("render %d: unexpected error: %v", i, errs[i])
		}
		if fps[i] != wantFP {
			t.Errorf("render %d: fingerprint differs", i)
		}
	}
}

func TestRenderOversizedCard(t *testing.T) {
	t.Parallel()

	r := scenarioReport()
	r.Suggestions[1].Description = strings.Repeat("This paragraph is far too long to fit on a single page. ", 120)

	geom := DefaultGeometry()
	res, err := New().Render(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := res.Blocks(SectionSuggestion)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(blocks))
	}
	var card []Instruction
	for _, in := range res.Instructions {
		if in.Block == blocks[1] {
			card = append(card, in)
		}
	}
	first := card[0]
	if !almostEqual(first.Y, geom.MarginTop) {
		t.Errorf("expected the oversized card to start at the top margin, got y=%f", first.Y)
	}
	if first.H <= geom.UsableHeight() {
		t.Errorf("expected the card background to exceed the usable height, got %f", first.H)
	}
	for _, in := range card {
		if in.Page != first.Page {
			t.Fatalf("expected the oversized card on one page, got %d and %d", first.Page, in.Page)
		}
	}

	// The next card starts on a fresh page rather than on top of the overflow.
	for _, in := range res.Instructions {
		if in.Block == blocks[2] {
			if in.Page != first.Page+1 {
				t.Errorf("expected the following card on page %d, got %d", first.Page+1, in.Page)
			}
			break
		}
	}
}

func TestRenderLongTable(t *testing.T) {
	t.Parallel()

	r := scenarioReport()
	r.Scores = nil
	for i := range 80 {
		r.Scores = append(r.Scores, model.CategoryScore{Name: fmt.Sprintf("Category %02d", i), Score: i})
	}
	res, err := New().Render(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pages := map[int]bool{}
	headers := map[int]int{}
	bodyRows := 0
	for _, in := range res.Instructions {
		if in.Section != SectionCategoryScores || in.Kind != KindTableRow {
			continue
		}
		pages[in.Page] = true
		if in.Header {
			headers[in.Page]++
		} else {
			bodyRows++
		}
	}
	if len(pages) < 2 {
		t.Fatalf("expected the table to span pages, got %d", len(pages))
	}
	if bodyRows != 80 {
		t.Errorf("expected 80 body rows, got %d", bodyRows)
	}
	for page := range pages {
		if headers[page] != 1 {
			t.Errorf("page %d: expected the header exactly once, got %d", page, headers[page])
		}
	}
}

func TestRenderBreakBeforeSuggestions(t *testing.T) {
	t.Parallel()

	res, err := New(WithBreakBeforeSuggestions(true)).Render(scenarioReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var first, lastScore *Instruction
	for i := range res.Instructions {
		in := &res.Instructions[i]
		if in.Section == SectionCategoryScores {
			lastScore = in
		}
		if in.Section == SectionSuggestion && first == nil {
			first = in
		}
	}
	if first == nil || lastScore == nil {
		t.Fatal("expected both sections")
	}
	if first.Page != lastScore.Page+1 {
		t.Errorf("expected suggestions on page %d, got %d", lastScore.Page+1, first.Page)
	}
	if !almostEqual(first.Y, DefaultGeometry().MarginTop) {
		t.Errorf("expected suggestions at the top margin, got %f", first.Y)
	}
}

func TestRenderColors(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	tests := []struct {
		score int
		want  RGB
	}{
		{score: 59, want: theme.Critical},
		{score: 60, want: theme.Warning},
		{score: 79, want: theme.Warning},
		{score: 80, want: theme.Good},
		{score: -5, want: theme.Critical},
		{score: 140, want: theme.Good},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %d", tt.score), func(t *testing.T) {
			t.Parallel()

			if got := theme.ScoreColor(tt.score); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}

			r := scenarioReport()
			r.OverallScore = tt.score
			res, err := New().Render(r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, in := range res.Instructions {
				if in.Section == SectionOverallScore && in.Kind == KindFilledRect {
					if in.Fill != tt.want {
						t.Errorf("expected badge fill %v, got %v", tt.want, in.Fill)
					}
					return
				}
			}
			t.Error("expected a score badge")
		})
	}

	t.Run("priorities share the score colors", func(t *testing.T) {
		t.Parallel()

		cases := map[model.Priority]RGB{
			model.PriorityHigh:   theme.Critical,
			model.PriorityMedium: theme.Warning,
			model.PriorityLow:    theme.Good,
		}
		for p, want := range cases {
			if got := theme.Color(model.PrioritySeverity(p)); got != want {
				t.Errorf("%s: expected %v, got %v", p, want, got)
			}
		}
	})
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	t.Run("column overflow aborts without output", func(t *testing.T) {
		t.Parallel()

		narrow := Geometry{Width: 30, Height: 297, MarginTop: 10, MarginRight: 5, MarginBottom: 15, MarginLeft: 5}
		res, err := New(WithGeometry(narrow)).Render(scenarioReport())
		if !errors.Is(err, ErrColumnOverflow) {
			t.Fatalf("expected ErrColumnOverflow, got %v", err)
		}
		if res != nil {
			t.Error("expected no result")
		}
		var le *Error
		if !errors.As(err, &le) || le.Section != SectionCategoryScores {
			t.Errorf("expected the error to name the category-scores section, got %v", err)
		}
	})

	t.Run("invalid geometry", func(t *testing.T) {
		t.Parallel()

		bad := DefaultGeometry()
		bad.MarginLeft = 205
		_, err := New(WithGeometry(bad)).Render(scenarioReport())
		if !errors.Is(err, ErrInvalidLayoutConstraint) {
			t.Errorf("expected ErrInvalidLayoutConstraint, got %v", err)
		}
	})

	t.Run("missing scores", func(t *testing.T) {
		t.Parallel()

		r := scenarioReport()
		r.Scores = nil
		_, err := New().Render(r)
		if !errors.Is(err, model.ErrMissingReportField) {
			t.Errorf("expected ErrMissingReportField, got %v", err)
		}
	})

	t.Run("missing suggestions", func(t *testing.T) {
		t.Parallel()

		r := scenarioReport()
		r.Suggestions = nil
		_, err := New().Render(r)
		if !errors.Is(err, model.ErrMissingReportField) {
			t.Errorf("expected ErrMissingReportField, got %v", err)
		}
	})

	t.Run("nil report", func(t *testing.T) {
		t.Parallel()

		_, err := New().Render(nil)
		if !errors.Is(err, model.ErrMissingReportField) {
			t.Errorf("expected ErrMissingReportField, got %v", err)
		}
	})
}

func TestRenderOptions(t *testing.T) {
	t.Parallel()

	t.Run("labels and generator", func(t *testing.T) {
		t.Parallel()

		p := New(
			WithGenerator("Acme SEO"),
			WithLabels(Labels{Title: "SEO 分析報告", PageFormat: "第 %d 頁，共 %d 頁"}),
		)
		res, err := p.Render(scenarioReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var texts []string
		for _, in := range res.Instructions {
			if in.Kind == KindText {
				texts = append(texts, in.Text)
			}
		}
		for _, want := range []string{"SEO 分析報告", "Acme SEO", fmt.Sprintf("第 1 頁，共 %d 頁", res.Pages), "Quick Wins"} {
			if !slices.Contains(texts, want) {
				t.Errorf("expected text %q", want)
			}
		}
	})

	t.Run("custom metrics change the layout", func(t *testing.T) {
		t.Parallel()

		a, err := New().Render(scenarioReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := New(WithMetrics(monoMetrics{})).Render(scenarioReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reflect.DeepEqual(a, b) {
			t.Error("expected different metrics to produce a different layout")
		}
	})

	t.Run("invalid theme", func(t *testing.T) {
		t.Parallel()

		theme := DefaultTheme()
		theme.BodySize = 0
		_, err := New(WithTheme(theme)).Render(scenarioReport())
		if !errors.Is(err, ErrInvalidLayoutConstraint) {
			t.Errorf("expected ErrInvalidLayoutConstraint, got %v", err)
		}
	})
}
