package layout

import "fmt"

// Kind tags the variant carried by an Instruction.
type Kind int

const (
	// KindText draws one line of text inside a box of width W.
	KindText Kind = iota

	// KindFilledRect fills (and optionally strokes) a rectangle.
	KindFilledRect

	// KindLine strokes a straight line from (X, Y) to (X2, Y2).
	KindLine

	// KindTableRow draws one table row: background, borders and cell text.
	KindTableRow
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFilledRect:
		return "rect"
	case KindLine:
		return "line"
	case KindTableRow:
		return "row"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{KindText, KindFilledRect, KindLine, KindTableRow} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown instruction kind %q", text)
}

// RGB is an 8-bit per channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Align is the horizontal alignment of text inside its box.
type Align string

// Alignments use the single-letter codes PDF backends understand.
const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Cell is one cell of a table row. X is absolute.
type Cell struct {
	X     float64  `json:"x"`
	Width float64  `json:"w"`
	Lines []string `json:"lines"`
	Align Align    `json:"align"`
	Color RGB      `json:"color"`
	Bold  bool     `json:"bold,omitempty"`
}

// Instruction is a single page-relative drawing command.
//
// Coordinates are millimetres from the top-left corner of page Page, and Y
// is the top edge of the drawn box. Only the fields relevant to Kind are
// set. Instructions emitted by the same block share Block, which is how a
// keep-together region can be recognised downstream. Instructions are plain values: the engine never mutates one after
// emitting it and consumers must not either.
type Instruction struct {
	Kind    Kind    `json:"kind"`
	Page    int     `json:"page"`
	Section string  `json:"section"`
	Block   int     `json:"block"` // sequence number of the emitting block
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`

	// Text
	Text  string `json:"text,omitempty"`
	Font  Font   `json:"font,omitzero"`
	Color RGB    `json:"color,omitzero"`
	Align Align  `json:"align,omitempty"`

	// FilledRect and TableRow
	Fill   RGB  `json:"fill,omitzero"`
	Stroke *RGB `json:"stroke,omitempty"`

	// Line
	X2        float64 `json:"x2,omitempty"`
	Y2        float64 `json:"y2,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`

	// TableRow
	Header     bool    `json:"header,omitempty"`
	Cells      []Cell  `json:"cells,omitempty"`
	Padding    float64 `json:"padding,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`
}

// Bottom returns the lowest Y the instruction covers.
func (in Instruction) Bottom() float64 {
	switch in.Kind {
	case KindLine:
		return max(in.Y, in.Y2)
	default:
		return in.Y + in.H
	}
}
