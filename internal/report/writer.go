package report

import (
	"io"

	"github.com/nao1215/seoreport/internal/model"
)

// Writer defines the interface for report output.
// Implementations render an SEO report in one output format.
//
// Design decision: Writers take the report rather than a finished layout.
// The PDF writer has to measure text with the fonts it embeds, so only the
// writer itself can build the paginator that lays the report out. Text
// formats never need a layout at all.
type Writer interface {
	// Write renders the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	// A failed render writes nothing.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// This is useful for producing a PDF and a terminal summary in one run.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter counts the bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
