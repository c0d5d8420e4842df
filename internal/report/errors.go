package report

import "errors"

var (
	// ErrFontNotFound is returned when a configured TrueType font file does not exist.
	ErrFontNotFound = errors.New("font file not found")

	// ErrPDFGeneration is returned when the PDF backend fails to build the document.
	ErrPDFGeneration = errors.New("PDF generation failed")
)
