package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/seoreport/internal/config"
)

// TestNewRenderCmd tests the render command creation.
func TestNewRenderCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRenderCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Name() != "render" {
			t.Errorf("expected name 'render', got %q", cmd.Name())
		}
	})

	t.Run("has flags with defaults", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{name: "format", shorthand: "f", defValue: "pdf"},
			{name: "output", shorthand: "o", defValue: ""},
			{name: "output-dir", shorthand: "d", defValue: ""},
			{name: "prefix", defValue: "seo-report"},
			{name: "batch", shorthand: "b", defValue: "false"},
			{name: "concurrency", shorthand: "j", defValue: "4"},
			{name: "date", defValue: ""},
			{name: "font", defValue: ""},
			{name: "bold-font", defValue: ""},
			{name: "break-before-suggestions", defValue: "false"},
			{name: "config", shorthand: "c", defValue: ""},
		}

		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("%s: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("%s: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}
		}
	})
}

// TestBuildConfig tests how the configuration file and flags combine.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	configYAML := `page:
  size: letter
generator: "Acme SEO"
breakBeforeSuggestions: true
output:
  format: markdown
  dir: reports
concurrency: 2
`

	t.Run("file values apply", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, configYAML)
		cmd := NewRenderCmd()
		if err := cmd.ParseFlags([]string{"--config", env.config}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{env.report})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatMarkdown {
			t.Errorf("expected format from file, got %q", cfg.Format)
		}
		if cfg.OutputDir != "reports" || cfg.Concurrency != 2 || cfg.Generator != "Acme SEO" {
			t.Errorf("file values not applied: %+v", cfg)
		}
		if !cfg.BreakBeforeSuggestions {
			t.Error("expected break before suggestions from file")
		}
		if cfg.Geometry.Width != 215.9 {
			t.Errorf("expected letter width, got %v", cfg.Geometry.Width)
		}
		if len(cfg.Inputs) != 1 || cfg.Inputs[0] != env.report {
			t.Errorf("unexpected inputs %v", cfg.Inputs)
		}
	})

	t.Run("flags override the file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, configYAML)
		cmd := NewRenderCmd()
		err := cmd.ParseFlags([]string{
			"--config", env.config,
			"--format", "text",
			"--concurrency", "8",
			"--break-before-suggestions=false",
			"--batch",
		})
		if err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{env.report})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatText {
			t.Errorf("expected format from flag, got %q", cfg.Format)
		}
		if cfg.Concurrency != 8 {
			t.Errorf("expected concurrency 8, got %d", cfg.Concurrency)
		}
		if cfg.BreakBeforeSuggestions {
			t.Error("expected the flag to disable the page break")
		}
		if !cfg.Batch {
			t.Error("expected batch mode")
		}
		if cfg.OutputDir != "reports" {
			t.Errorf("expected output dir from file, got %q", cfg.OutputDir)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewRenderCmd()
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		_, err := buildConfig(cmd, nil)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestRunRenderCmd tests rendering through the command line.
func TestRunRenderCmd(t *testing.T) {
	t.Parallel()

	t.Run("renders a PDF with a derived name", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 1\n")
		outDir := filepath.Join(env.dir, "reports")

		stdout, _, err := execute(t, "", "render", "--config", env.config, "--output-dir", outDir, env.report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path := filepath.Join(outDir, "seo-report_example.com_2026-10-19.pdf")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
		if !strings.HasPrefix(string(data), "%PDF-") {
			t.Error("expected a PDF document")
		}
		if !strings.Contains(stdout, "Wrote "+path) {
			t.Errorf("expected a summary line, got %q", stdout)
		}
	})

	t.Run("date override names the file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 1\n")
		_, _, err := execute(t, "", "render", "--config", env.config,
			"--format", "markdown", "--output-dir", env.dir, "--prefix", "audit", "--date", "2026-01-31", env.report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(env.dir, "audit_example.com_2026-01-31.md"))
		if err != nil {
			t.Fatalf("expected a markdown file: %v", err)
		}
		if !strings.Contains(string(data), "2026-01-31") {
			t.Error("expected the overridden date in the document")
		}
	})

	t.Run("writes the layout to stdout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 1\n")
		stdout, stderr, err := execute(t, testReportJSON, "render", "--config", env.config,
			"--format", "json", "-o", "-", "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc struct {
			Site  string `json:"site"`
			Pages int    `json:"pages"`
		}
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("expected only JSON on stdout: %v", err)
		}
		if doc.Site != "https://example.com" || doc.Pages < 1 {
			t.Errorf("unexpected layout document %+v", doc)
		}
		if !strings.Contains(stderr, "Wrote -") {
			t.Errorf("expected the summary on stderr, got %q", stderr)
		}
	})

	t.Run("batch continues past failures", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 2\n")
		broken := filepath.Join(env.dir, "broken.json")
		if err := os.WriteFile(broken, []byte(`{"siteUrl": ""}`), 0600); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		stdout, stderr, err := execute(t, "", "render", "--config", env.config,
			"--format", "text", "--batch", "--output-dir", env.dir, broken, env.report)
		if err == nil || !strings.Contains(err.Error(), "1 of 2 reports failed") {
			t.Fatalf("expected one failure, got %v", err)
		}
		if !strings.Contains(stderr, "Render error for "+broken) {
			t.Errorf("expected the failure on stderr, got %q", stderr)
		}
		if !strings.Contains(stdout, "Rendered 1 of 2 reports") {
			t.Errorf("expected a batch summary, got %q", stdout)
		}
		if _, err := os.Stat(filepath.Join(env.dir, "seo-report_example.com_2026-10-19.txt")); err != nil {
			t.Errorf("expected the valid report to be written: %v", err)
		}
	})

	t.Run("configuration errors", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 1\n")
		tests := []struct {
			name string
			args []string
			want error
		}{
			{name: "no input", args: []string{"render", "--config", env.config}, want: config.ErrNoInput},
			{name: "unknown format", args: []string{"render", "--config", env.config, "--format", "docx", env.report}, want: config.ErrUnknownFormat},
			{name: "invalid date", args: []string{"render", "--config", env.config, "--date", "19/10/2026", env.report}, want: config.ErrInvalidDate},
			{name: "one output for many inputs", args: []string{"render", "--config", env.config, "-o", "out.pdf", env.report, env.report}, want: config.ErrConflictingOutput},
			{name: "stdin twice", args: []string{"render", "--config", env.config, "-", env.report, "-"}, want: config.ErrRepeatedStdin},
		}

		for _, tt := range tests {
			_, _, err := execute(t, "", tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
			}
		}
	})

	t.Run("same site and date get distinct files", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 2\n")
		copyPath := filepath.Join(env.dir, "copy.json")
		if err := os.WriteFile(copyPath, []byte(testReportJSON), 0600); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		outDir := filepath.Join(env.dir, "reports")

		stdout, _, err := execute(t, "", "render", "--config", env.config,
			"--format", "markdown", "--output-dir", outDir, env.report, copyPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{"seo-report_example.com_2026-10-19.md", "seo-report_example.com_2026-10-19_2.md"} {
			path := filepath.Join(outDir, name)
			if _, err := os.Stat(path); err != nil {
				t.Errorf("expected %s: %v", path, err)
			}
			if !strings.Contains(stdout, "Wrote "+path) {
				t.Errorf("expected a summary line for %s, got %q", path, stdout)
			}
		}
	})

	t.Run("generator appears in text formats", func(t *testing.T) {
		t.Parallel()

		for _, format := range []string{"markdown", "text"} {
			env := newTestEnv(t, "concurrency: 1\n")
			stdout, _, err := execute(t, "", "render", "--config", env.config,
				"--format", format, "--generator", "Acme Audit", "-o", "-", env.report)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", format, err)
			}
			if !strings.Contains(stdout, "Acme Audit") {
				t.Errorf("%s: expected the generator in the document, got %q", format, stdout)
			}
		}
	})

	t.Run("invalid page format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 1\nlabels:\n  pageFormat: \"Page %d\"\n")
		_, _, err := execute(t, "", "render", "--config", env.config, "--output-dir", env.dir, env.report)
		if !errors.Is(err, config.ErrInvalidLabels) {
			t.Errorf("expected ErrInvalidLabels, got %v", err)
		}
	})

	t.Run("missing font", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "concurrency: 1\n")
		_, _, err := execute(t, "", "render", "--config", env.config,
			"--font", filepath.Join(env.dir, "missing.ttf"), "--output-dir", env.dir, env.report)
		if err == nil {
			t.Fatal("expected an error for a missing font")
		}
		entries, _ := os.ReadDir(env.dir)
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".pdf") {
				t.Errorf("expected no document, found %s", e.Name())
			}
		}
	})
}
