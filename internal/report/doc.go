// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - PDFWriter: The paginated report drawn with go-pdf/fpdf
//   - JSONWriter: The page layout as draw instructions for other renderers
//   - MarkdownWriter: A Markdown document for issue trackers and wikis
//   - SimpleWriter: Human-readable text output for terminal display
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) and from page layout (which is in the
// layout package). Writers that need pages ask a layout.Paginator for them;
// the PDF writer supplies the metrics of its own fonts so wrapped text
// never overflows the boxes it is drawn in.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
