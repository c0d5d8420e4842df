package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/seoreport/internal/config"
	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
	"github.com/nao1215/seoreport/internal/pipeline"
	"github.com/nao1215/seoreport/internal/report"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [report-file...]",
		Short: "Render SEO analysis results as paginated reports",
		Long: `Render lays out one or more SEO analysis results and writes the documents.

Each input is a JSON or YAML analysis result. JSON wrapped in Markdown code
fences is accepted, so the raw answer of an analysis service can be used as
is. "-" reads the result from standard input.

Output formats:
- pdf:      the paginated report (default)
- json:     the page layout as drawing instructions
- markdown: the report as a Markdown document
- text:     the report as plain text

Without --output, file names are derived from the site and the report date,
e.g. seo-report_example.com_2026-10-19.pdf.

Examples:
  # Render a single report as PDF
  seoreport render result.json

  # Embed a TrueType font for non-Latin text
  seoreport render --font NotoSansJP-Regular.ttf --bold-font NotoSansJP-Bold.ttf result.json

  # Render every result in a directory, continuing past failures
  seoreport render --batch --output-dir reports/ results/*.json

  # Dump the layout of a report read from stdin
  cat result.json | seoreport render --format json -o - -

Configuration file (.seoreport) example:
  page:
    size: letter
  font:
    regular: NotoSansJP-Regular.ttf
  labels:
    title: "SEO分析レポート"`,
		Args: cobra.ArbitraryArgs,
		RunE: runRenderCmd,
	}

	// Output flags
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: pdf, json, markdown or text")
	cmd.Flags().StringP("output", "o", "",
		`Write the document to the specified file path ("-" for stdout)`)
	cmd.Flags().StringP("output-dir", "d", "",
		"Directory for derived file names (creates directories if needed)")
	cmd.Flags().String("prefix", model.DefaultFilePrefix,
		"Prefix of derived file names")

	// Batch flags
	cmd.Flags().BoolP("batch", "b", false,
		"Render every input even when one of them fails")
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency,
		"Number of reports rendered at once")

	addLayoutFlags(cmd)

	return cmd
}

// addLayoutFlags adds the flags that change how a report is laid out.
// They are shared by every command that renders a layout.
func addLayoutFlags(cmd *cobra.Command) {
	// Content flags
	cmd.Flags().String("date", "",
		"Override the report date (YYYY-MM-DD)")
	cmd.Flags().String("generator", "",
		"Footer text naming the producing tool")
	cmd.Flags().Bool("break-before-suggestions", false,
		"Start the improvement suggestions on a new page")

	// Font flags
	cmd.Flags().String("font", "",
		"TrueType font for PDF text (default: Helvetica, Latin only)")
	cmd.Flags().String("bold-font", "",
		"TrueType font for bold PDF text (default: the regular font)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seoreport in current or home directory)")
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, args []string) error {
	// Build config from defaults, the configuration file and flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return err
	}

	r := &renderer{
		cfg:    cfg,
		prefix: prefix,
		stdin:  cmd.InOrStdin(),
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		logger: logger,
	}
	return r.run(ctx)
}

// buildConfig creates a Config from the configuration file and cobra
// command flags. Flags override the file only when they are set; flags a
// command does not define are never set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	stringFlags := map[string]*string{
		"format":     &cfg.Format,
		"output":     &cfg.OutputFile,
		"output-dir": &cfg.OutputDir,
		"date":       &cfg.Date,
		"generator":  &cfg.Generator,
		"font":       &cfg.FontRegular,
		"bold-font":  &cfg.FontBold,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("break-before-suggestions") {
		if cfg.BreakBeforeSuggestions, err = flags.GetBool("break-before-suggestions"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("batch") {
		if cfg.Batch, err = flags.GetBool("batch"); err != nil {
			return nil, err
		}
	}
	cfg.Verbose = getVerboseFlag(cmd)

	cfg.FontRegular = config.ResolveFont(cfg.FontRegular)
	cfg.FontBold = config.ResolveFont(cfg.FontBold)

	// Get positional arguments (report files)
	cfg.Inputs = args

	return cfg, nil
}

// renderer runs the render pipelines for one invocation.
type renderer struct {
	cfg    *config.Config
	prefix string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	// paths is shared by the write steps of one run.
	paths *pipeline.OutputPaths
}

// run renders every input and prints a summary line per report.
func (r *renderer) run(ctx context.Context) error {
	r.logger.Info("starting render",
		"inputs", r.cfg.Inputs,
		"format", r.cfg.Format,
		"batch", r.cfg.Batch,
		"concurrency", r.cfg.Concurrency,
	)
	startTime := time.Now()

	r.paths = pipeline.NewOutputPaths()
	bp := pipeline.NewBatchProcessor(r.newPipeline,
		pipeline.WithConcurrency(r.cfg.Concurrency),
		pipeline.WithFailFast(!r.cfg.Batch),
		pipeline.WithBatchLogger(r.logger),
	)
	jobs, err := bp.ProcessBatch(ctx, r.cfg.Inputs)

	// The document itself may be on stdout
	status := r.stdout
	if r.cfg.OutputFile == pipeline.StdioPath {
		status = r.stderr
	}

	for _, job := range jobs {
		switch {
		case job.Err == nil:
			fmt.Fprintf(status, "Wrote %s (%d pages)\n", job.Output, job.Pages())
		case errors.Is(job.Err, pipeline.ErrSkipped):
			fmt.Fprintf(r.stderr, "Skipped %s\n", job.Input)
		default:
			fmt.Fprintf(r.stderr, "Render error for %s: %v\n", job.Input, job.Err)
		}
	}

	if len(jobs) > 1 {
		fmt.Fprintf(status, "\nRendered %d of %d reports in %s\n",
			len(jobs)-len(pipeline.Failed(jobs)), len(jobs), time.Since(startTime).Round(time.Millisecond))
	}

	if err != nil {
		return err
	}
	if failed := pipeline.Failed(jobs); len(failed) > 0 {
		return fmt.Errorf("%d of %d reports failed", len(failed), len(jobs))
	}
	return nil
}

// newPipeline creates the pipeline for one report.
func (r *renderer) newPipeline() *pipeline.Pipeline {
	p := pipeline.New(pipeline.WithLogger(r.logger))
	p.AddSteps(
		pipeline.NewLoadStep(pipeline.WithStdin(r.stdin)),
		pipeline.NewNormalizeStep(r.cfg.Date),
		pipeline.NewLayoutStep(newLayouter(r.cfg), r.logger),
		pipeline.NewWriteStep(newWriterFactory(r.cfg), r.cfg.Extension(),
			pipeline.WithOutputFile(r.cfg.OutputFile),
			pipeline.WithOutputDir(r.cfg.OutputDir),
			pipeline.WithFilePrefix(r.prefix),
			pipeline.WithStdout(r.stdout),
			pipeline.WithOutputPaths(r.paths),
		),
	)
	return p
}

// pdfOptions returns the PDF writer options described by the configuration.
func pdfOptions(cfg *config.Config) []report.PDFWriterOption {
	opts := []report.PDFWriterOption{report.WithPDFLayout(cfg.LayoutOptions()...)}
	if cfg.FontRegular != "" {
		opts = append(opts, report.WithFonts(cfg.FontRegular, cfg.FontBold))
	}
	return opts
}

// newLayouter returns the layouter used to check a report before it is
// written. PDF output is measured with the fonts it will be drawn with.
func newLayouter(cfg *config.Config) pipeline.Layouter {
	if cfg.Format == config.FormatPDF {
		return report.NewPDFWriter(io.Discard, pdfOptions(cfg)...)
	}
	return layout.New(cfg.LayoutOptions()...)
}

// newWriterFactory returns the writer factory for the configured format.
func newWriterFactory(cfg *config.Config) pipeline.WriterFactory {
	switch cfg.Format {
	case config.FormatJSON:
		return func(w io.Writer) report.Writer {
			return report.NewJSONWriter(w,
				report.WithPrettyPrint(),
				report.WithJSONLayout(cfg.LayoutOptions()...),
			)
		}
	case config.FormatMarkdown:
		return func(w io.Writer) report.Writer {
			return report.NewMarkdownWriter(w, report.WithMarkdownLabels(cfg.ReportLabels()))
		}
	case config.FormatText:
		return func(w io.Writer) report.Writer {
			return report.NewSimpleWriter(w,
				report.WithTextLabels(cfg.ReportLabels()),
				report.WithVerbose(true),
			)
		}
	default:
		return func(w io.Writer) report.Writer {
			return report.NewPDFWriter(w, pdfOptions(cfg)...)
		}
	}
}
