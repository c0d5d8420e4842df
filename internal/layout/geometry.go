package layout

import "fmt"

// Geometry describes a page in millimetres. It is fixed for a render.
type Geometry struct {
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
	MarginTop    float64 `json:"marginTop" yaml:"marginTop"`
	MarginRight  float64 `json:"marginRight" yaml:"marginRight"`
	MarginBottom float64 `json:"marginBottom" yaml:"marginBottom"`
	MarginLeft   float64 `json:"marginLeft" yaml:"marginLeft"`
}

// A4 page size and the margins the report was designed for.
const (
	A4Width  = 210.0
	A4Height = 297.0

	DefaultMarginTop    = 10.0
	DefaultMarginRight  = 10.0
	DefaultMarginBottom = 15.0
	DefaultMarginLeft   = 10.0
)

// DefaultGeometry returns portrait A4 with the default margins.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:        A4Width,
		Height:       A4Height,
		MarginTop:    DefaultMarginTop,
		MarginRight:  DefaultMarginRight,
		MarginBottom: DefaultMarginBottom,
		MarginLeft:   DefaultMarginLeft,
	}
}

// UsableWidth is the page width minus the left and right margins.
func (g Geometry) UsableWidth() float64 {
	return g.Width - g.MarginLeft - g.MarginRight
}

// UsableHeight is the page height minus the top and bottom margins.
func (g Geometry) UsableHeight() float64 {
	return g.Height - g.MarginTop - g.MarginBottom
}

// ContentBottom is the lowest Y that flowing content may reach.
func (g Geometry) ContentBottom() float64 {
	return g.Height - g.MarginBottom
}

// ContentRight is the rightmost X of the content area.
func (g Geometry) ContentRight() float64 {
	return g.Width - g.MarginRight
}

// Validate checks that every dimension is usable.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return newError("Geometry", fmt.Errorf("%w: page %gx%g", ErrInvalidLayoutConstraint, g.Width, g.Height))
	}
	if g.MarginTop < 0 || g.MarginRight < 0 || g.MarginBottom < 0 || g.MarginLeft < 0 {
		return newError("Geometry", fmt.Errorf("%w: negative margin", ErrInvalidLayoutConstraint))
	}
	if g.UsableWidth() <= 0 || g.UsableHeight() <= 0 {
		return newError("Geometry", fmt.Errorf("%w: usable area %gx%g",
			ErrInvalidLayoutConstraint, g.UsableWidth(), g.UsableHeight()))
	}
	return nil
}
