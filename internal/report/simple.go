package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
)

const (
	// ruleWidth is the width of the section separators.
	ruleWidth = 70

	// barCells is the number of characters in a score bar.
	barCells = 20
)

// SimpleWriter outputs reports in human-readable text format.
// This is the default output format for terminal display.
//
// Design decision: We use plain text without ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Severity is already spelled out next to every score
type SimpleWriter struct {
	baseWriter

	labels layout.Labels

	// showEmpty controls whether sections without content are shown.
	showEmpty bool

	// verbose adds suggestion descriptions.
	verbose bool

	upper cases.Caser
	title cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with suggestion descriptions.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithTextLabels sets the headings. Empty fields keep their English default.
func WithTextLabels(l layout.Labels) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.labels = l.Merge(layout.DefaultLabels())
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		labels:     layout.DefaultLabels(),
		upper:      cases.Upper(language.Und),
		title:      cases.Title(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in text format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	if err := report.Validate(); err != nil {
		return 0, err
	}

	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeScores(&sb, report)
	w.writeList(&sb, w.labels.CriticalIssues, report.CriticalIssues)
	w.writeSuggestions(&sb, report)
	w.writeList(&sb, w.labels.QuickWins, report.QuickWins)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the title block with site information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(center(w.upper.String(w.labels.Title), ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fields := [][2]string{{w.labels.Site, report.SiteURL}}
	if report.TargetKeywords != "" {
		fields = append(fields, [2]string{w.labels.Keywords, report.TargetKeywords})
	}
	fields = append(fields,
		[2]string{w.labels.Date, report.Date},
		[2]string{w.labels.OverallScore, fmt.Sprintf("%d / %d (%s)", report.OverallScore, model.MaxScore, report.Severity())},
	)

	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, displayWidth(f[0]))
	}
	for _, f := range fields {
		sb.WriteString(pad(f[0]+":", labelWidth+2))
		sb.WriteString(f[1])
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeSection writes a section heading between separators.
func (w *SimpleWriter) writeSection(sb *strings.Builder, heading string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.upper.String(heading))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeScores writes one line with a bar per category.
func (w *SimpleWriter) writeScores(sb *strings.Builder, report *model.Report) {
	if len(report.Scores) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, w.labels.CategoryScores)

	nameWidth := 0
	for _, c := range report.Scores {
		nameWidth = max(nameWidth, displayWidth(w.title.String(c.Name)))
	}
	for _, c := range report.Scores {
		sb.WriteString("  ")
		sb.WriteString(pad(w.title.String(c.Name), nameWidth+2))
		sb.WriteString(fmt.Sprintf("%3d  %s  %s\n", c.Score, scoreBar(c.Score), c.Severity()))
	}
	if len(report.Scores) == 0 {
		sb.WriteString("  -\n")
	}
	sb.WriteString("\n")
}

// writeList writes a numbered list section.
func (w *SimpleWriter) writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, heading)
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, item))
	}
	if len(items) == 0 {
		sb.WriteString("  -\n")
	}
	sb.WriteString("\n")
}

// writeSuggestions writes one entry per suggestion.
func (w *SimpleWriter) writeSuggestions(sb *strings.Builder, report *model.Report) {
	if len(report.Suggestions) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, w.labels.Suggestions)
	for i, s := range report.Suggestions {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", w.upper.String(w.labels.Priority(s.Priority)), s.Title))
		if s.Category != "" {
			sb.WriteString(fmt.Sprintf("      %s: %s\n", w.labels.Category, s.Category))
		}
		if w.verbose && s.Description != "" {
			for line := range strings.SplitSeq(s.Description, "\n") {
				sb.WriteString("      ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		if s.Impact != "" {
			sb.WriteString(fmt.Sprintf("      %s: %s\n", w.labels.Impact, s.Impact))
		}
		if i < len(report.Suggestions)-1 {
			sb.WriteString("\n")
		}
	}
	if len(report.Suggestions) == 0 {
		sb.WriteString("  -\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the closing separator and generator line.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.labels.Generator)
	sb.WriteString("\n")
}

// scoreBar draws a clamped score as a fixed-width bar.
func scoreBar(score int) string {
	filled := model.ClampScore(score) * barCells / model.MaxScore
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled) + "]"
}

// displayWidth returns the terminal column count of s. East Asian wide
// and fullwidth characters take two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// pad right-pads s with spaces to n columns.
func pad(s string, n int) string {
	if w := displayWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// center pads s on the left so it is centered in n columns.
func center(s string, n int) string {
	if w := displayWidth(s); w < n {
		return strings.Repeat(" ", (n-w)/2) + s
	}
	return s
}
