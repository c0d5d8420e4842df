package layout

import (
	"fmt"
	"strings"
)

// ColumnPolicy selects how TableLayout assigns column widths.
type ColumnPolicy int

const (
	// PolicyFixed uses Column.Width as an absolute width.
	PolicyFixed ColumnPolicy = iota

	// PolicyProportional treats Column.Width as a weight and scales the
	// weights to the available width.
	PolicyProportional

	// PolicyAuto sizes each column by its widest content, capped at
	// Column.MaxWidth, then spreads or shrinks to the available width.
	PolicyAuto
)

// DefaultMinColumnWidth is the narrowest column Auto and Proportional
// layouts accept when Column.MinWidth is zero.
const DefaultMinColumnWidth = 8.0

// DefaultCellPadding is the padding on every side of a cell.
const DefaultCellPadding = 1.5

// Column describes one table column.
type Column struct {
	Width    float64 // Fixed: width in mm. Proportional: weight. Auto: ignored.
	MinWidth float64 // narrowest acceptable width, 0 means DefaultMinColumnWidth
	MaxWidth float64 // Auto only: cap on the content width, 0 means no cap
	Align    Align
}

// Table is the input to TableLayout: an optional header row, body rows of
// cell strings and the column definitions.
type Table struct {
	Header     []string
	Rows       [][]string
	Columns    []Column
	Policy     ColumnPolicy
	Font       Font
	HeaderFont Font
	Padding    float64 // 0 means DefaultCellPadding
}

// TableLayout is a measured table ready to be placed on pages.
type TableLayout struct {
	Widths       []float64 // column widths
	Offsets      []float64 // column x-offsets from the table's left edge
	Aligns       []Align
	Header       [][]string
	HeaderHeight float64
	Rows         [][][]string // wrapped lines per row and cell
	RowHeights   []float64
	Padding      float64
	Font         Font
	HeaderFont   Font
}

// Width returns the total table width.
func (tl *TableLayout) Width() float64 {
	total := 0.0
	for _, w := range tl.Widths {
		total += w
	}
	return total
}

// Height returns the height of the header plus every body row.
func (tl *TableLayout) Height() float64 {
	h := tl.HeaderHeight
	for _, rh := range tl.RowHeights {
		h += rh
	}
	return h
}

// HasHeader reports whether the table has a header row.
func (tl *TableLayout) HasHeader() bool {
	return tl.Header != nil
}

// LayoutTable computes column widths, wrapped cell text and row heights for
// t within available millimetres. It fails with ErrColumnOverflow when the
// columns cannot fit even at their minimum widths.
func (m *Measurer) LayoutTable(t Table, available float64) (*TableLayout, error) {
	if available <= 0 {
		return nil, newError("TableLayout", fmt.Errorf("%w: available width %g", ErrInvalidLayoutConstraint, available))
	}
	if t.Font.Size <= 0 {
		return nil, newError("TableLayout", fmt.Errorf("%w: font size %g", ErrInvalidLayoutConstraint, t.Font.Size))
	}
	if t.HeaderFont.Size <= 0 {
		t.HeaderFont = Font{Size: t.Font.Size, Bold: true}
	}
	if t.Padding <= 0 {
		t.Padding = DefaultCellPadding
	}

	cols := len(t.Columns)
	if cols == 0 {
		return nil, newError("TableLayout", fmt.Errorf("%w: no columns", ErrInvalidLayoutConstraint))
	}
	if t.Header != nil && len(t.Header) != cols {
		return nil, newError("TableLayout", fmt.Errorf("%w: header has %d cells, want %d",
			ErrInvalidLayoutConstraint, len(t.Header), cols))
	}
	for i, row := range t.Rows {
		if len(row) != cols {
			return nil, newError("TableLayout", fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrInvalidLayoutConstraint, i, len(row), cols))
		}
	}

	var (
		widths []float64
		err    error
	)
	switch t.Policy {
	case PolicyFixed:
		widths, err = fixedWidths(t.Columns, available)
	case PolicyProportional:
		widths, err = proportionalWidths(t.Columns, available)
	case PolicyAuto:
		widths, err = autoWidths(t.Columns, m.naturalWidths(t), available)
	default:
		err = fmt.Errorf("%w: unknown column policy %d", ErrInvalidLayoutConstraint, t.Policy)
	}
	if err != nil {
		return nil, newError("TableLayout", err)
	}

	tl := &TableLayout{
		Widths:     widths,
		Offsets:    make([]float64, cols),
		Aligns:     make([]Align, cols),
		Padding:    t.Padding,
		Font:       t.Font,
		HeaderFont: t.HeaderFont,
	}
	x := 0.0
	for i, w := range widths {
		tl.Offsets[i] = x
		x += w
		tl.Aligns[i] = t.Columns[i].Align
		if tl.Aligns[i] == "" {
			tl.Aligns[i] = AlignLeft
		}
	}

	if t.Header != nil {
		tl.Header, tl.HeaderHeight, err = m.wrapRow(t.Header, widths, t.HeaderFont, t.Padding)
		if err != nil {
			return nil, newError("TableLayout", err)
		}
	}
	tl.Rows = make([][][]string, len(t.Rows))
	tl.RowHeights = make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		tl.Rows[i], tl.RowHeights[i], err = m.wrapRow(row, widths, t.Font, t.Padding)
		if err != nil {
			return nil, newError("TableLayout", err)
		}
	}
	return tl, nil
}

// wrapRow wraps every cell of a row and returns the row height.
func (m *Measurer) wrapRow(cells []string, widths []float64, font Font, padding float64) ([][]string, float64, error) {
	wrapped := make([][]string, len(cells))
	maxLines := 1
	for i, cell := range cells {
		inner := widths[i] - 2*padding
		if inner <= 0 {
			return nil, 0, fmt.Errorf("%w: column %d narrower than its padding", ErrColumnOverflow, i)
		}
		lines, err := m.Wrap(cell, font, inner)
		if err != nil {
			return nil, 0, err
		}
		wrapped[i] = lines
		maxLines = max(maxLines, len(lines))
	}
	return wrapped, float64(maxLines)*font.LineHeight() + 2*padding, nil
}

// naturalWidths returns the unwrapped width of each column's widest line,
// padding included.
func (m *Measurer) naturalWidths(t Table) []float64 {
	natural := make([]float64, len(t.Columns))
	measure := func(cells []string, font Font) {
		for i, cell := range cells {
			for _, line := range strings.Split(cell, "\n") {
				natural[i] = max(natural[i], m.Width(line, font)+2*t.Padding)
			}
		}
	}
	if t.Header != nil {
		measure(t.Header, t.HeaderFont)
	}
	for _, row := range t.Rows {
		measure(row, t.Font)
	}
	return natural
}

// widthEpsilon absorbs floating point error when comparing width sums.
const widthEpsilon = 1e-6

func minWidth(c Column) float64 {
	if c.MinWidth > 0 {
		return c.MinWidth
	}
	return DefaultMinColumnWidth
}

func fixedWidths(cols []Column, available float64) ([]float64, error) {
	widths := make([]float64, len(cols))
	total := 0.0
	for i, c := range cols {
		if c.Width <= 0 {
			return nil, fmt.Errorf("%w: column %d width %g", ErrInvalidLayoutConstraint, i, c.Width)
		}
		widths[i] = c.Width
		total += c.Width
	}
	if total > available+widthEpsilon {
		return nil, fmt.Errorf("%w: fixed widths %.2f exceed %.2f", ErrColumnOverflow, total, available)
	}
	return widths, nil
}

func proportionalWidths(cols []Column, available float64) ([]float64, error) {
	weights := 0.0
	for i, c := range cols {
		if c.Width <= 0 {
			return nil, fmt.Errorf("%w: column %d weight %g", ErrInvalidLayoutConstraint, i, c.Width)
		}
		weights += c.Width
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = available * c.Width / weights
		if widths[i] < minWidth(c)-widthEpsilon {
			return nil, fmt.Errorf("%w: column %d share %.2f below minimum %.2f",
				ErrColumnOverflow, i, widths[i], minWidth(c))
		}
	}
	return widths, nil
}

// autoWidths implements widest-content-wins. Natural widths are capped at
// MaxWidth and raised to MinWidth. Spare space is spread in proportion to
// each column's share; missing space is taken the same way, pinning any
// column that would drop below its minimum and redistributing the rest.
func autoWidths(cols []Column, natural []float64, available float64) ([]float64, error) {
	n := len(cols)
	widths := make([]float64, n)
	minTotal := 0.0
	for i, c := range cols {
		w := natural[i]
		if c.MaxWidth > 0 {
			w = min(w, c.MaxWidth)
		}
		widths[i] = max(w, minWidth(c))
		minTotal += minWidth(c)
	}
	if minTotal > available+widthEpsilon {
		return nil, fmt.Errorf("%w: minimum widths %.2f exceed %.2f", ErrColumnOverflow, minTotal, available)
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total <= available {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
		return widths, nil
	}

	pinned := make([]bool, n)
	for {
		free, fixed := 0.0, 0.0
		for i, w := range widths {
			if pinned[i] {
				fixed += w
			} else {
				free += w
			}
		}
		scale := (available - fixed) / free
		changed := false
		for i, c := range cols {
			if pinned[i] {
				continue
			}
			if widths[i]*scale < minWidth(c) {
				widths[i] = minWidth(c)
				pinned[i] = true
				changed = true
			}
		}
		if changed {
			continue
		}
		for i := range widths {
			if !pinned[i] {
				widths[i] *= scale
			}
		}
		return widths, nil
	}
}
