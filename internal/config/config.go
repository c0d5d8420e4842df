package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/seoreport/internal/layout"
)

// Output formats accepted by --format.
const (
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Formats lists every output format in the order they are documented.
var Formats = []string{FormatPDF, FormatJSON, FormatMarkdown, FormatText}

// DateLayout is the layout of dates given with --date.
const DateLayout = time.DateOnly

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "seoreport"

	// DefaultFormat is PDF, the format the report was designed for.
	DefaultFormat = FormatPDF

	// DefaultConcurrency of 4 keeps batch rendering fast without holding
	// many PDF documents in memory at once. Each in-flight PDF keeps its
	// fonts and page buffers until it is written.
	DefaultConcurrency = 4
)

// Config holds all configuration options for seoreport.
// This struct is populated from defaults, then the configuration file,
// then CLI flags, and is passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for the runtime configuration. The file format is nested (see File)
// because page geometry and labels read better as groups in YAML, but the
// code that consumes the configuration only needs flat fields.
type Config struct {
	// Inputs are the report files to render.
	Inputs []string

	// Format is the output format: pdf, json, markdown or text.
	Format string

	// OutputFile is the output file path for a single input.
	// "-" writes to stdout. Empty derives a file name from the report.
	OutputFile string

	// OutputDir is the directory derived file names are created in.
	// Directories are created automatically if they don't exist.
	OutputDir string

	// Date overrides the report date (YYYY-MM-DD) in the document and the
	// file name. Empty keeps the date from the report.
	Date string

	// FontRegular and FontBold are TrueType font paths for the PDF writer.
	// Empty means the PDF core font, which only covers Windows-1252.
	FontRegular string
	FontBold    string

	// Geometry is the page size and margins in millimetres.
	Geometry layout.Geometry

	// Labels override the fixed strings printed in the report.
	// Empty fields keep their English default.
	Labels layout.Labels

	// Generator is the footer text naming the producing tool.
	// Empty keeps the label default.
	Generator string

	// BreakBeforeSuggestions starts the suggestions on a new page.
	BreakBeforeSuggestions bool

	// Batch renders every input even when one of them fails.
	Batch bool

	// Concurrency is the number of reports rendered at once in batch mode.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the locations listed in FindConfigFile.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., page size, format).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		Geometry:    layout.DefaultGeometry(),
		Concurrency: DefaultConcurrency,
	}
}

// Apply overrides the configuration with the values set in a configuration
// file. Values that are absent from the file are left unchanged.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	c.Geometry = f.Page.Geometry
	c.Labels = f.Labels.Merge(c.Labels)
	if f.Font.Regular != "" {
		c.FontRegular = f.Font.Regular
	}
	if f.Font.Bold != "" {
		c.FontBold = f.Font.Bold
	}
	if f.Generator != "" {
		c.Generator = f.Generator
	}
	if f.BreakBeforeSuggestions != nil {
		c.BreakBeforeSuggestions = *f.BreakBeforeSuggestions
	}
	if f.Output.Format != "" {
		c.Format = f.Output.Format
	}
	if f.Output.Dir != "" {
		c.OutputDir = f.Output.Dir
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
}

// LayoutOptions returns the paginator options described by the configuration.
func (c *Config) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithGeometry(c.Geometry),
		layout.WithLabels(c.Labels),
		layout.WithGenerator(c.Generator),
		layout.WithBreakBeforeSuggestions(c.BreakBeforeSuggestions),
	}
}

// ReportLabels returns the labels with English defaults filled in and the
// generator override applied, for writers that print the footer themselves.
func (c *Config) ReportLabels() layout.Labels {
	labels := c.Labels.Merge(layout.DefaultLabels())
	if c.Generator != "" {
		labels.Generator = c.Generator
	}
	return labels
}

// Extension returns the file extension of the output format.
func (c *Config) Extension() string {
	switch c.Format {
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return "pdf"
	}
}

// ResolveFont returns the path of a font file. Relative paths that do not
// exist in the working directory are looked up in FontDir.
func ResolveFont(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	candidate := filepath.Join(FontDir(), path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

// XDGConfigDir returns the XDG config directory for seoreport.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/seoreport
// On macOS: ~/Library/Application Support/seoreport
// On Windows: %APPDATA%\seoreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for seoreport.
// On Linux: ~/.local/share/seoreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// FontDir is where font files named by a relative path are searched.
func FontDir() string {
	return filepath.Join(XDGDataDir(), "fonts")
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any report is rendered.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one report to render
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	// Standard input is consumed by the first job that reads it
	stdin := 0
	for _, in := range c.Inputs {
		if in == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("%w: %d times", ErrRepeatedStdin, stdin)
	}

	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	// Concurrency must be positive; zero would mean no rendering
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// A single output file cannot hold several reports
	if c.OutputFile != "" && len(c.Inputs) > 1 {
		return ErrConflictingOutput
	}

	if c.Date != "" {
		if _, err := time.Parse(DateLayout, c.Date); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, c.Date)
		}
	}

	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPage, err)
	}

	if err := c.Labels.ValidatePageFormat(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLabels, err)
	}

	return nil
}
