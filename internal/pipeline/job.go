package pipeline

import (
	"github.com/nao1215/seoreport/internal/layout"
	"github.com/nao1215/seoreport/internal/model"
)

// Job is the state of one report moving through a pipeline.
// Steps fill it in; a Job is never shared between goroutines.
type Job struct {
	// Input is the path of the report file. "-" is standard input.
	Input string

	// Report is the decoded report. Set by LoadStep.
	Report *model.Report

	// Result is the page layout. Set by LayoutStep.
	Result *layout.Result

	// Output is the path the document is written to. "-" is standard output.
	Output string

	// Written is the number of bytes written by WriteStep.
	Written int

	// Err is the error of the step that failed, if any.
	Err error

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string
}

// NewJob creates a job for the given input file.
func NewJob(input string) *Job {
	return &Job{Input: input}
}

// Pages returns the page count of the layout, or 0 before LayoutStep ran.
func (j *Job) Pages() int {
	if j.Result == nil {
		return 0
	}
	return j.Result.Pages
}
