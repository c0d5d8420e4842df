package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Details such as the offending value are added
// by wrapping with fmt.Errorf.
var (
	// ErrNoInput is returned when no report file is given.
	ErrNoInput = errors.New("no input specified: provide at least one report file")

	// ErrUnknownFormat is returned when the output format is not one of
	// pdf, json, markdown or text.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no report is ever rendered.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidPage is returned when the page size or margins leave no
	// usable area, or when a named page size is unknown.
	ErrInvalidPage = errors.New("invalid page geometry")

	// ErrConflictingOutput is returned when a single output file is given
	// for several inputs. Use an output directory instead.
	ErrConflictingOutput = errors.New("conflicting output: --output accepts a single input, use --output-dir")

	// ErrInvalidDate is returned when the report date override is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

	// ErrInvalidLabels is returned when a label cannot be printed, such as a
	// page format that does not take the page number and the page count.
	ErrInvalidLabels = errors.New("invalid labels")

	// ErrRepeatedStdin is returned when "-" is given more than once as an
	// input. Standard input can only be read once.
	ErrRepeatedStdin = errors.New("standard input given more than once")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
