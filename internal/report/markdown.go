package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and wikis.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
	labels layout.Labels
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownLabels sets the headings. Empty fields keep their English default.
func WithMarkdownLabels(l layout.Labels) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.labels = l.Merge(layout.DefaultLabels())
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		labels:     layout.DefaultLabels(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	if err := report.Validate(); err != nil {
		return 0, err
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeScores(md, report)
	w.writeList(md, w.labels.CriticalIssues, report.CriticalIssues)
	w.writeSuggestions(md, report)
	w.writeList(md, w.labels.QuickWins, report.QuickWins)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the site information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1(w.labels.Title)
	md.PlainText("")

	rows := [][]string{{w.labels.Site, "`" + report.SiteURL + "`"}}
	if report.TargetKeywords != "" {
		rows = append(rows, []string{w.labels.Keywords, report.TargetKeywords})
	}
	rows = append(rows,
		[]string{w.labels.Date, report.Date},
		[]string{w.labels.OverallScore, strconv.Itoa(report.OverallScore) + " / " + strconv.Itoa(model.MaxScore)},
	)

	writeTable(md, []string{"", ""}, rows)
	md.PlainText("")
}

// cellEscaper keeps a cell on one table row. Line breaks become <br>, which
// GitHub renders inside tables, and pipes no longer end the cell.
var cellEscaper = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>", "|", `\|`)

// writeTable writes a table with every header and cell escaped.
func writeTable(md *markdown.Markdown, header []string, rows [][]string) {
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, cell := range row {
			escaped[i][j] = cellEscaper.Replace(cell)
		}
	}
	h := make([]string, len(header))
	for i, cell := range header {
		h[i] = cellEscaper.Replace(cell)
	}
	md.Table(markdown.TableSet{Header: h, Rows: escaped})
}

// writeAlert writes an alert matching the overall score's severity.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch report.Severity() {
	case model.SeverityCritical:
		md.Cautionf("%s: %d. %d critical issue(s) need attention.",
			w.labels.OverallScore, report.OverallScore, len(report.CriticalIssues))
	case model.SeverityWarning:
		md.Warningf("%s: %d. %d high priority suggestion(s).",
			w.labels.OverallScore, report.OverallScore, report.CountByPriority(model.PriorityHigh))
	default:
		md.Tip(w.labels.OverallScore + ": " + strconv.Itoa(report.OverallScore) + ".")
	}
	md.PlainText("")
}

// writeScores writes the category score table.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, report *model.Report) {
	md.H2(w.labels.CategoryScores)
	md.PlainText("")

	if len(report.Scores) == 0 {
		md.PlainText("-")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Scores))
	for _, c := range report.Scores {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Score), c.Severity().String()})
	}
	writeTable(md, []string{w.labels.Category, w.labels.Score, ""}, rows)
	md.PlainText("")
}

// writeList writes a numbered table for a list section. Empty lists are omitted.
func (w *MarkdownWriter) writeList(md *markdown.Markdown, heading string, items []string) {
	if len(items) == 0 {
		return
	}

	md.H2(heading)
	md.PlainText("")

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), item})
	}
	writeTable(md, []string{"#", heading}, rows)
	md.PlainText("")
}

// writeSuggestions writes the priority chart, the suggestion table and the
// collapsible descriptions.
func (w *MarkdownWriter) writeSuggestions(md *markdown.Markdown, report *model.Report) {
	if len(report.Suggestions) == 0 {
		return
	}

	md.H2(w.labels.Suggestions)
	md.PlainText("")

	w.writePieChart(md, report)

	rows := make([][]string, 0, len(report.Suggestions))
	for _, s := range report.Suggestions {
		rows = append(rows, []string{
			w.labels.Priority(s.Priority),
			s.Category,
			s.Title,
			s.Impact,
		})
	}
	writeTable(md, []string{"", w.labels.Category, "", w.labels.Impact}, rows)
	md.PlainText("")

	for _, s := range report.Suggestions {
		if s.Description != "" {
			md.Details(s.Title, s.Description)
		}
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of suggestion priorities.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(w.labels.Suggestions),
		piechart.WithShowData(true),
	)

	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		if n := report.CountByPriority(p); n > 0 {
			chart.LabelAndIntValue(w.labels.Priority(p), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the generator line.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%s*", w.labels.Generator)
}
