package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
)

// JSONWriter outputs the laid-out report as JSON draw instructions.
// This format is designed for tool integration: any drawing backend can
// replay the instructions without running the layout engine.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. The instruction types already carry their json tags
// 2. The fingerprint is computed over the same encoding
// 3. Output stays stable across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	layoutOpts []layout.Option
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithJSONLayout passes options to the paginator.
func WithJSONLayout(opts ...layout.Option) JSONWriterOption {
	return func(w *JSONWriter) {
		w.layoutOpts = append(w.layoutOpts, opts...)
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// LayoutDocument is the JSON form of a laid-out report.
type LayoutDocument struct {
	// Site is the analyzed site URL.
	Site string `json:"site"`

	// Geometry is the page geometry the instructions were laid out on.
	Geometry layout.Geometry `json:"geometry"`

	// Pages is the number of pages.
	Pages int `json:"pages"`

	// Fingerprint identifies the layout: equal reports and options produce
	// equal fingerprints.
	Fingerprint string `json:"fingerprint"`

	// Instructions are ordered by page, each page's footer last.
	Instructions []layout.Instruction `json:"instructions"`
}

// Write lays out the report and outputs the instructions.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	p := layout.New(w.layoutOpts...)
	result, err := p.Render(report)
	if err != nil {
		return 0, err
	}
	fingerprint, err := result.Fingerprint()
	if err != nil {
		return 0, err
	}

	return w.writeJSON(&LayoutDocument{
		Site:         report.SiteURL,
		Geometry:     p.Geometry(),
		Pages:        result.Pages,
		Fingerprint:  fingerprint,
		Instructions: result.Instructions,
	})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
