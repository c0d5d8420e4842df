package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for layout failures. Every one of them aborts the whole
// render; the engine never returns a partial result.
var (
	// ErrInvalidLayoutConstraint is returned when a non-positive width or
	// height reaches the measurer, the table layout or the page geometry.
	// It indicates a configuration bug and is never worth retrying.
	ErrInvalidLayoutConstraint = errors.New("layout: invalid layout constraint")

	// ErrColumnOverflow is returned when table columns cannot fit the
	// available width even at their minimum width. Callers may retry with a
	// smaller font or fewer columns.
	ErrColumnOverflow = errors.New("layout: column overflow")

	// ErrInvalidPageFormat is returned for a footer page format that does
	// not take exactly two integer verbs, the page number and the page count.
	ErrInvalidPageFormat = errors.New("layout: invalid page format")
)

// Error records the operation and report section that failed.
type Error struct {
	Op      string // operation name, e.g. "Wrap", "TableLayout"
	Section string // report section being laid out, empty outside a render
	Err     error  // underlying error
}

func (e *Error) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("layout.%s [%s]: %v", e.Op, e.Section, e.Err)
	}
	return fmt.Sprintf("layout.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err with operation context.
func newError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// inSection attaches the section name to err when it is a layout error
// without one, or wraps it otherwise.
func inSection(section string, err error) error {
	var le *Error
	if errors.As(err, &le) {
		if le.Section == "" {
			return &Error{Op: le.Op, Section: section, Err: le.Err}
		}
		return err
	}
	return &Error{Op: "Render", Section: section, Err: err}
}
