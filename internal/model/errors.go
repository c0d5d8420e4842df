package model

import "errors"

// Report decoding and validation errors.
var (
	// ErrMissingReportField is returned when a structurally required field
	// (site URL, scores, suggestions) is absent. Out-of-range scores are not
	// reported with this error; they are clamped when colored.
	ErrMissingReportField = errors.New("missing report field")

	// ErrInvalidPriority is returned when a suggestion priority label is not recognized.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrUnsupportedFormat is returned when a report file is neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported report format")
)
