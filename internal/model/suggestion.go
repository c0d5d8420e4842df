package model

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a Suggestion.
type Priority int

const (
	// PriorityLow is the zero value so that a missing priority renders calmly.
	PriorityLow Priority = iota

	// PriorityMedium marks suggestions worth scheduling soon.
	PriorityMedium

	// PriorityHigh marks suggestions that should be handled first.
	PriorityHigh
)

// priorityLabels maps accepted input labels to priorities.
// The upstream analysis prompt asks for 高/中/低; English labels are
// accepted as well.
var priorityLabels = map[string]Priority{
	"high":   PriorityHigh,
	"medium": PriorityMedium,
	"low":    PriorityLow,
	"高":      PriorityHigh,
	"中":      PriorityMedium,
	"低":      PriorityLow,
}

// String returns the canonical English label.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// ParsePriority converts a label to a Priority.
// Matching is case-insensitive and ignores a trailing "priority" or 優先級.
func ParsePriority(label string) (Priority, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.TrimSuffix(key, "優先級")
	key = strings.TrimSuffix(key, "priority")
	key = strings.TrimSpace(key)

	if p, ok := priorityLabels[key]; ok {
		return p, nil
	}
	return PriorityLow, fmt.Errorf("%w: %q", ErrInvalidPriority, label)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Both encoding/json and yaml.v3 use it for string values.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Suggestion is a single prioritized optimization suggestion.
// It is a plain value; copies are independent.
type Suggestion struct {
	// Category groups the suggestion (technical, content, links, UX).
	Category string `json:"category" yaml:"category"`

	// Title is the one-line summary shown in the card header area.
	Title string `json:"title" yaml:"title"`

	// Description is the detailed explanation.
	Description string `json:"description" yaml:"description"`

	// Priority drives the card color.
	Priority Priority `json:"priority" yaml:"priority"`

	// Impact describes the expected effect of applying the suggestion.
	Impact string `json:"impact" yaml:"impact"`
}

// Severity returns the severity bucket of the suggestion's priority.
func (s Suggestion) Severity() Severity {
	return PrioritySeverity(s.Priority)
}
