package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a report document.
type Format string

const (
	// FormatAuto detects JSON or YAML from the content.
	FormatAuto Format = ""

	// FormatJSON is the encoding produced by the analysis step.
	FormatJSON Format = "json"

	// FormatYAML is accepted for hand-written reports.
	FormatYAML Format = "yaml"
)

// codeFencePattern matches Markdown code fence markers. Analysis replies
// sometimes wrap the JSON document in ```json ... ``` despite being asked
// not to.
var codeFencePattern = regexp.MustCompile("(?m)^[ \t]*```[a-zA-Z]*[ \t]*\r?\n?|\r?\n?[ \t]*```[ \t]*$")

// StripCodeFences removes Markdown code fence markers around a document.
func StripCodeFences(data []byte) []byte {
	return bytes.TrimSpace(codeFencePattern.ReplaceAll(data, nil))
}

// DetectFormat guesses the format of a document from its first significant byte.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(StripCodeFences(data))
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// FormatFromPath returns the format implied by a file extension.
// Unknown extensions yield FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Decode parses a report document and validates its required fields.
func Decode(data []byte, format Format) (*Report, error) {
	data = StripCodeFences(data)
	if format == FormatAuto {
		format = DetectFormat(data)
	}

	var r Report
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decoding JSON report: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decoding YAML report: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadFile reads and decodes a report file.
func LoadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, err
	}
	r, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
