package pipeline

import "errors"

var (
	// ErrNoReport is returned by steps that need a decoded report when no
	// LoadStep ran before them.
	ErrNoReport = errors.New("no report loaded")

	// ErrSkipped is recorded in the jobs of a batch that never started
	// because the batch was cancelled or stopped by a failure.
	ErrSkipped = errors.New("skipped")
)
