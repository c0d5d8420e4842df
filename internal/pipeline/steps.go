package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
	"github.com/nao1215/seoreport/internal/report"
)

// StdioPath is the input or output path meaning standard input or output.
const StdioPath = "-"

// LoadStep reads and decodes the report file of a job.
// JSON and YAML are accepted, including JSON wrapped in Markdown code
// fences as analysis services tend to return it.
type LoadStep struct {
	// stdin is read when the input is StdioPath.
	stdin io.Reader
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithStdin sets the reader used for the "-" input.
func WithStdin(r io.Reader) LoadStepOption {
	return func(s *LoadStep) {
		s.stdin = r
	}
}

// NewLoadStep creates a new load step reading "-" from os.Stdin.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{stdin: os.Stdin}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do decodes the job's input into job.Report.
func (s *LoadStep) Do(_ context.Context, job *Job) error {
	if job.Input != StdioPath {
		r, err := model.LoadFile(job.Input)
		if err != nil {
			return err
		}
		job.Report = r
		return nil
	}

	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	r, err := model.Decode(data, model.FormatAuto)
	if err != nil {
		return fmt.Errorf("standard input: %w", err)
	}
	job.Report = r
	return nil
}

// NormalizeStep removes inline markup from the report text and applies a
// date override. The decoded report is replaced by a cleaned copy.
type NormalizeStep struct {
	// date replaces the report date when not empty.
	date string
}

// NewNormalizeStep creates a normalize step. An empty date keeps the
// report's own date.
func NewNormalizeStep(date string) *NormalizeStep {
	return &NormalizeStep{date: date}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do replaces job.Report with its normalized copy.
func (s *NormalizeStep) Do(_ context.Context, job *Job) error {
	if job.Report == nil {
		return ErrNoReport
	}
	job.Report = job.Report.Normalize()
	if s.date != "" {
		job.Report.Date = s.date
	}
	return nil
}

// Layouter lays a report out on pages. Both *layout.Paginator and
// *report.PDFWriter implement it.
type Layouter interface {
	Render(r *model.Report) (*layout.Result, error)
}

// LayoutStep lays the report out before anything is written.
//
// Design decision: Layout failures such as a column overflow are detected
// here, before an output file is created, so a failing report never
// leaves an empty or truncated document on disk.
type LayoutStep struct {
	layouter Layouter
	logger   *slog.Logger
}

// NewLayoutStep creates a layout step. A nil logger means slog.Default().
func NewLayoutStep(layouter Layouter, logger *slog.Logger) *LayoutStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutStep{layouter: layouter, logger: logger}
}

// Name returns the step name.
func (s *LayoutStep) Name() string {
	return "layout"
}

// Do stores the layout in job.Result.
func (s *LayoutStep) Do(_ context.Context, job *Job) error {
	if job.Report == nil {
		return ErrNoReport
	}
	result, err := s.layouter.Render(job.Report)
	if err != nil {
		return err
	}
	job.Result = result

	s.logger.Debug("report laid out",
		"input", job.Input,
		"pages", result.Pages,
		"instructions", len(result.Instructions),
		"sections", result.Sections(),
	)
	return nil
}

// WriterFactory creates the report writer for one output destination.
type WriterFactory func(w io.Writer) report.Writer

// WriteStep renders the report with a writer and stores the document.
//
// Output is rendered into memory first and written in one piece, so a
// failing writer never leaves a partial document behind.
type WriteStep struct {
	newWriter WriterFactory

	// output is an explicit path or StdioPath. Empty derives a file name.
	output string

	// dir is the directory derived file names are created in.
	dir string

	prefix string
	ext    string
	stdout io.Writer
	now    func() time.Time

	// paths deduplicates derived file names across the jobs of a run.
	paths *OutputPaths
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithOutputFile writes to path instead of a derived file name.
// StdioPath writes to standard output.
func WithOutputFile(path string) WriteStepOption {
	return func(s *WriteStep) {
		s.output = path
	}
}

// WithOutputDir sets the directory derived file names are created in.
func WithOutputDir(dir string) WriteStepOption {
	return func(s *WriteStep) {
		s.dir = dir
	}
}

// WithFilePrefix sets the prefix of derived file names.
func WithFilePrefix(prefix string) WriteStepOption {
	return func(s *WriteStep) {
		s.prefix = prefix
	}
}

// WithStdout sets the writer used for the "-" output.
func WithStdout(w io.Writer) WriteStepOption {
	return func(s *WriteStep) {
		s.stdout = w
	}
}

// WithOutputPaths shares a path set between the write steps of one run so
// that derived file names never collide. Explicit output files are not
// affected.
func WithOutputPaths(paths *OutputPaths) WriteStepOption {
	return func(s *WriteStep) {
		s.paths = paths
	}
}

// WithClock sets the clock used when the report date cannot be parsed.
func WithClock(now func() time.Time) WriteStepOption {
	return func(s *WriteStep) {
		s.now = now
	}
}

// NewWriteStep creates a write step producing files with extension ext.
func NewWriteStep(newWriter WriterFactory, ext string, opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{
		newWriter: newWriter,
		prefix:    model.DefaultFilePrefix,
		ext:       ext,
		stdout:    os.Stdout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do renders the report and writes the document.
func (s *WriteStep) Do(_ context.Context, job *Job) error {
	if job.Report == nil {
		return ErrNoReport
	}

	var buf bytes.Buffer
	n, err := s.newWriter(&buf).Write(job.Report)
	if err != nil {
		return err
	}

	if s.output == StdioPath {
		if _, err := s.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing standard output: %w", err)
		}
		job.Output = StdioPath
		job.Written = n
		return nil
	}

	path := s.Path(job.Report)
	if s.output == "" && s.paths != nil {
		path = s.paths.Reserve(path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // documents are meant to be shared
		return fmt.Errorf("writing %s: %w", path, err)
	}
	job.Output = path
	job.Written = n
	return nil
}

// Path returns the file the report is written to.
// Derived names use the report date when it is YYYY-MM-DD and today otherwise.
func (s *WriteStep) Path(r *model.Report) string {
	if s.output != "" {
		return s.output
	}
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		date = s.now()
	}
	return filepath.Join(s.dir, model.FileName(s.prefix, r.SiteURL, date, s.ext))
}
