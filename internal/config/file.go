package config

import (
	"fmt"
	"strings"

	"github.com/nao1215/seoreport/internal/layout"
)

// Named page sizes in portrait orientation, in millimetres.
var pageSizes = map[string][2]float64{
	"a4":     {layout.A4Width, layout.A4Height},
	"a5":     {148, 210},
	"a3":     {297, 420},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// PageConfig is the page section of the configuration file.
// Size names a paper size; explicit width and height are used when it is empty.
type PageConfig struct {
	Size            string `yaml:"size,omitempty"`
	Landscape       bool   `yaml:"landscape,omitempty"`
	layout.Geometry `yaml:",inline"`
}

// resolve applies the named size and orientation to the geometry.
func (p *PageConfig) resolve() error {
	if p.Size != "" {
		size, ok := pageSizes[strings.ToLower(p.Size)]
		if !ok {
			return fmt.Errorf("%w: unknown page size %q", ErrInvalidPage, p.Size)
		}
		p.Width, p.Height = size[0], size[1]
	}
	if p.Landscape && p.Width < p.Height {
		p.Width, p.Height = p.Height, p.Width
	}
	return nil
}

// FontConfig names the TrueType fonts embedded in PDF output.
type FontConfig struct {
	Regular string `yaml:"regular,omitempty"`
	Bold    string `yaml:"bold,omitempty"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// File represents the structure of the .seoreport configuration file.
type File struct {
	// Page is the page geometry. Fields absent from the file keep the A4 defaults.
	Page PageConfig `yaml:"page,omitempty"`

	// Font configures PDF fonts.
	Font FontConfig `yaml:"font,omitempty"`

	// Labels override the fixed report strings, e.g. for another language.
	Labels layout.Labels `yaml:"labels,omitempty"`

	// Generator is the footer text naming the producing tool.
	Generator string `yaml:"generator,omitempty"`

	// BreakBeforeSuggestions starts the suggestions on a new page.
	// A pointer distinguishes false from absent.
	BreakBeforeSuggestions *bool `yaml:"breakBeforeSuggestions,omitempty"`

	// Output holds output defaults.
	Output OutputConfig `yaml:"output,omitempty"`

	// Concurrency is the number of reports rendered at once.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// newFile returns a File whose page holds the default geometry, so that a
// partial page section only overrides the fields it sets.
func newFile() File {
	return File{Page: PageConfig{Geometry: layout.DefaultGeometry()}}
}
