package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/pipeline"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <report-file>",
		Short: "Show how a report is laid out on pages",
		Long: `Inspect lays out a report without writing a document and shows which
sections land on which page.

The layout is measured with the PDF fonts, so the page breaks are the ones
"render" produces with the same flags and configuration file. The layout
fingerprint changes whenever anything on any page moves, which makes it
useful for spotting layout changes between versions.

Examples:
  # Show the page breaks of a report
  seoreport inspect result.json

  # Print the summary as JSON
  seoreport inspect --json result.json

  # Check the effect of a page break before the suggestions
  seoreport inspect --break-before-suggestions result.json`,
		Args: cobra.ExactArgs(1),
		RunE: runInspectCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the summary as JSON")
	addLayoutFlags(cmd)

	return cmd
}

// LayoutSummary describes where the sections of a report were placed.
type LayoutSummary struct {
	Site        string `json:"site"`
	Date        string `json:"date"`
	Pages       int    `json:"pages"`
	Fingerprint string `json:"fingerprint"`

	// PageSections lists the sections of every page, footers excluded.
	PageSections [][]string `json:"pageSections"`

	// Blocks counts the keep-together blocks of every section.
	Blocks map[string]int `json:"blocks"`
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewLoadStep(pipeline.WithStdin(cmd.InOrStdin())),
		pipeline.NewNormalizeStep(cfg.Date),
		pipeline.NewLayoutStep(newLayouter(cfg), logger),
	)

	job := pipeline.NewJob(cfg.Inputs[0])
	if err := p.Execute(context.Background(), job); err != nil {
		return fmt.Errorf("failed to lay out %s: %w", job.Input, err)
	}

	summary, err := summarize(job)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputSummaryJSON(cmd.OutOrStdout(), summary)
	}
	outputSummaryText(cmd.OutOrStdout(), summary)
	return nil
}

// summarize builds the layout summary of a job that went through LayoutStep.
func summarize(job *pipeline.Job) (*LayoutSummary, error) {
	fingerprint, err := job.Result.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint layout: %w", err)
	}

	summary := &LayoutSummary{
		Site:         job.Report.SiteURL,
		Date:         job.Report.Date,
		Pages:        job.Result.Pages,
		Fingerprint:  fingerprint,
		PageSections: pageSections(job.Result),
		Blocks:       make(map[string]int),
	}
	for _, section := range job.Result.Sections() {
		if section == layout.SectionFooter {
			continue
		}
		summary.Blocks[section] = len(job.Result.Blocks(section))
	}
	return summary, nil
}

// pageSections returns the distinct sections of every page in order.
func pageSections(result *layout.Result) [][]string {
	pages := make([][]string, result.Pages)
	for i := range result.Pages {
		sections := make([]string, 0)
		for _, in := range result.OnPage(i) {
			if in.Section == layout.SectionFooter || slices.Contains(sections, in.Section) {
				continue
			}
			sections = append(sections, in.Section)
		}
		pages[i] = sections
	}
	return pages
}

// outputSummaryJSON outputs the summary as indented JSON.
func outputSummaryJSON(w io.Writer, summary *LayoutSummary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// outputSummaryText outputs the summary in human-readable form.
func outputSummaryText(w io.Writer, summary *LayoutSummary) {
	fmt.Fprintf(w, "Site:        %s\n", summary.Site)
	fmt.Fprintf(w, "Date:        %s\n", summary.Date)
	fmt.Fprintf(w, "Pages:       %d\n", summary.Pages)
	fmt.Fprintf(w, "Fingerprint: %s\n", summary.Fingerprint)
	fmt.Fprintln(w)

	for i, sections := range summary.PageSections {
		fmt.Fprintf(w, "Page %d: %s\n", i+1, strings.Join(sections, ", "))
	}
	fmt.Fprintln(w)

	for _, name := range slices.Sorted(maps.Keys(summary.Blocks)) {
		fmt.Fprintf(w, "  %-16s %d blocks\n", name, summary.Blocks[name])
	}
}
