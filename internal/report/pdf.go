package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
)

const (
	// coreFontFamily is the PDF core font used when no TrueType font is configured.
	coreFontFamily = "Helvetica"

	// embeddedFontFamily is the family name registered for configured TrueType fonts.
	embeddedFontFamily = "ReportSans"

	// defaultLineWidth is used for lines that carry no width of their own.
	defaultLineWidth = 0.2

	creator = "seoreport"
)

// PDFWriter renders reports as PDF documents with go-pdf/fpdf.
//
// Design decision: The writer lays the report out itself, measuring text
// through the same fpdf document it draws into. Whatever the PDF backend
// thinks a string is wide is exactly what the paginator wraps against, so
// text never spills out of the box the layout reserved for it.
//
// Without fonts configured the writer uses the Helvetica core font, which
// only covers Windows-1252. Reports in other scripts need a UTF-8 TrueType
// font set with WithFonts.
type PDFWriter struct {
	baseWriter

	// regularFont and boldFont are TrueType file paths. Empty means core font.
	regularFont string
	boldFont    string

	// compress enables stream compression.
	compress bool

	// creationDate pins the document date. Zero means the time of writing.
	creationDate time.Time

	layoutOpts []layout.Option
}

// PDFWriterOption configures a PDFWriter.
type PDFWriterOption func(*PDFWriter)

// WithFonts embeds the given TrueType fonts instead of the core font.
// An empty bold path reuses the regular font for bold text.
func WithFonts(regular, bold string) PDFWriterOption {
	return func(w *PDFWriter) {
		w.regularFont = regular
		w.boldFont = bold
	}
}

// WithCompression enables or disables content stream compression.
// Uncompressed output is larger but its text is searchable in the raw bytes.
func WithCompression(compress bool) PDFWriterOption {
	return func(w *PDFWriter) {
		w.compress = compress
	}
}

// WithCreationDate sets the document creation date, making output reproducible.
func WithCreationDate(date time.Time) PDFWriterOption {
	return func(w *PDFWriter) {
		w.creationDate = date
	}
}

// WithPDFLayout passes options to the paginator. A metrics option is
// overridden by the metrics of the document's fonts.
func WithPDFLayout(opts ...layout.Option) PDFWriterOption {
	return func(w *PDFWriter) {
		w.layoutOpts = append(w.layoutOpts, opts...)
	}
}

// NewPDFWriter creates a PDFWriter that outputs to the given writer.
func NewPDFWriter(output io.Writer, opts ...PDFWriterOption) *PDFWriter {
	w := &PDFWriter{
		baseWriter: newBaseWriter(output),
		compress:   true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write lays out the report and writes it as a PDF document.
// Nothing is written when the layout fails.
func (w *PDFWriter) Write(report *model.Report) (int, error) {
	doc, err := w.newDocument()
	if err != nil {
		return 0, err
	}

	p := w.paginator(doc)
	result, err := p.Render(report)
	if err != nil {
		return 0, err
	}

	doc.pdf.SetTitle(report.SiteURL, true)
	doc.draw(result, p.Geometry())
	if doc.pdf.Err() {
		return 0, fmt.Errorf("%w: %w", ErrPDFGeneration, doc.pdf.Error())
	}

	cw := &countingWriter{w: w.output}
	if err := doc.pdf.Output(cw); err != nil {
		return cw.n, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	return cw.n, nil
}

// Render lays out the report with the metrics of the writer's fonts without
// producing a document. The result is what Write would draw.
func (w *PDFWriter) Render(report *model.Report) (*layout.Result, error) {
	doc, err := w.newDocument()
	if err != nil {
		return nil, err
	}
	return w.paginator(doc).Render(report)
}

// paginator builds a paginator measuring with doc's fonts.
func (w *PDFWriter) paginator(doc *pdfDocument) *layout.Paginator {
	opts := append(slices.Clone(w.layoutOpts), layout.WithMetrics(doc.metrics))
	return layout.New(opts...)
}

// pdfDocument is an fpdf document with its fonts loaded.
type pdfDocument struct {
	pdf       *gofpdf.Fpdf
	family    string
	translate func(string) string
	metrics   *FPDFMetrics
}

// newDocument creates an empty document and registers the writer's fonts.
func (w *PDFWriter) newDocument() (*pdfDocument, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(w.compress)
	pdf.SetCreator(creator, true)
	if !w.creationDate.IsZero() {
		pdf.SetCreationDate(w.creationDate)
	}

	doc := &pdfDocument{
		pdf:       pdf,
		family:    coreFontFamily,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}

	if w.regularFont != "" {
		bold := w.boldFont
		if bold == "" {
			bold = w.regularFont
		}
		for _, path := range []string{w.regularFont, bold} {
			if _, err := os.Stat(path); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
				}
				return nil, err
			}
		}
		pdf.AddUTF8Font(embeddedFontFamily, "", w.regularFont)
		pdf.AddUTF8Font(embeddedFontFamily, "B", bold)
		if pdf.Err() {
			return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, pdf.Error())
		}
		doc.family = embeddedFontFamily
		doc.translate = func(s string) string { return s }
	}

	doc.metrics = NewFPDFMetrics(pdf, doc.family, doc.translate)
	return doc, nil
}

// draw adds one page per layout page and draws its instructions.
func (d *pdfDocument) draw(result *layout.Result, geom layout.Geometry) {
	orientation, size := pageFormat(geom)
	for page := range result.Pages {
		d.pdf.AddPageFormat(orientation, size)
		for _, in := range result.OnPage(page) {
			switch in.Kind {
			case layout.KindText:
				d.text(in.X, in.Y, in.W, in.H, in.Text, in.Font, in.Color, in.Align)
			case layout.KindFilledRect:
				d.rect(in.X, in.Y, in.W, in.H, in.Fill, in.Stroke)
			case layout.KindLine:
				d.line(in)
			case layout.KindTableRow:
				d.tableRow(in)
			}
		}
	}
}

// pageFormat converts the geometry to fpdf's orientation and portrait size.
func pageFormat(geom layout.Geometry) (string, gofpdf.SizeType) {
	if geom.Width > geom.Height {
		return "L", gofpdf.SizeType{Wd: geom.Height, Ht: geom.Width}
	}
	return "P", gofpdf.SizeType{Wd: geom.Width, Ht: geom.Height}
}

func (d *pdfDocument) setFont(font layout.Font) {
	d.pdf.SetFont(d.family, fontStyle(font.Bold), font.Size)
}

func (d *pdfDocument) text(x, y, w, h float64, s string, font layout.Font, color layout.RGB, align layout.Align) {
	d.setFont(font)
	d.pdf.SetTextColor(int(color.R), int(color.G), int(color.B))
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, d.translate(s), "", 0, string(align), false, 0, "")
}

func (d *pdfDocument) rect(x, y, w, h float64, fill layout.RGB, stroke *layout.RGB) {
	d.pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
	style := "F"
	if stroke != nil {
		d.pdf.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
		d.pdf.SetLineWidth(defaultLineWidth)
		style = "FD"
	}
	d.pdf.Rect(x, y, w, h, style)
}

func (d *pdfDocument) line(in layout.Instruction) {
	width := in.LineWidth
	if width <= 0 {
		width = defaultLineWidth
	}
	d.pdf.SetDrawColor(int(in.Color.R), int(in.Color.G), int(in.Color.B))
	d.pdf.SetLineWidth(width)
	d.pdf.Line(in.X, in.Y, in.X2, in.Y2)
}

// tableRow draws the row background, the column separators and the
// wrapped lines of every cell inside its padding.
func (d *pdfDocument) tableRow(in layout.Instruction) {
	d.rect(in.X, in.Y, in.W, in.H, in.Fill, in.Stroke)
	for i, cell := range in.Cells {
		if i > 0 && in.Stroke != nil {
			d.pdf.Line(cell.X, in.Y, cell.X, in.Y+in.H)
		}
		font := layout.Font{Size: in.Font.Size, Bold: cell.Bold}
		innerW := cell.Width - 2*in.Padding
		for j, line := range cell.Lines {
			y := in.Y + in.Padding + float64(j)*in.LineHeight
			d.text(cell.X+in.Padding, y, innerW, in.LineHeight, line, font, cell.Color, cell.Align)
		}
	}
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// FPDFMetrics measures text with the fonts registered in an fpdf document.
// It implements layout.FontMetrics.
//
// Measuring changes the document's current font, so an FPDFMetrics must
// not be shared by documents that are being drawn concurrently.
type FPDFMetrics struct {
	pdf       *gofpdf.Fpdf
	family    string
	translate func(string) string
}

var _ layout.FontMetrics = (*FPDFMetrics)(nil)

// NewFPDFMetrics returns metrics for family in pdf. translate converts text
// to the font's encoding; nil means the text is used as is.
func NewFPDFMetrics(pdf *gofpdf.Fpdf, family string, translate func(string) string) *FPDFMetrics {
	if translate == nil {
		translate = func(s string) string { return s }
	}
	return &FPDFMetrics{pdf: pdf, family: family, translate: translate}
}

// StringWidth returns the width of s in millimetres.
func (m *FPDFMetrics) StringWidth(s string, font layout.Font) float64 {
	if s == "" {
		return 0
	}
	m.pdf.SetFont(m.family, fontStyle(font.Bold), font.Size)
	return m.pdf.GetStringWidth(m.translate(s))
}
