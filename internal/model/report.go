package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Report is the SEO analysis result for one site.
// It is produced by the external analysis step and treated as read-only by
// every consumer in this module.
type Report struct {
	// SiteURL is the analyzed site, as entered by the user.
	SiteURL string `json:"siteUrl" yaml:"siteUrl"`

	// TargetKeywords is optional; the site-info box omits the line when empty.
	TargetKeywords string `json:"targetKeywords,omitempty" yaml:"targetKeywords,omitempty"`

	// Date is the analysis date as display text. It is supplied by the
	// caller and never generated by the layout engine.
	Date string `json:"date" yaml:"date"`

	// OverallScore is the headline score in [0,100].
	OverallScore int `json:"overallScore" yaml:"overallScore"`

	// Scores holds the per-category scores in the order the analysis produced them.
	Scores Scores `json:"scores" yaml:"scores"`

	// CriticalIssues lists problems that need immediate attention.
	CriticalIssues []string `json:"criticalIssues,omitempty" yaml:"criticalIssues,omitempty"`

	// Suggestions may be empty but must be present.
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`

	// QuickWins lists improvements that can be applied quickly.
	QuickWins []string `json:"quickWins,omitempty" yaml:"quickWins,omitempty"`
}

// Validate checks that the structurally required fields are present.
// Out-of-range scores are accepted; they are clamped when colored.
func (r *Report) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: report", ErrMissingReportField)
	}
	if r.SiteURL == "" {
		return fmt.Errorf("%w: siteUrl", ErrMissingReportField)
	}
	if r.Scores == nil {
		return fmt.Errorf("%w: scores", ErrMissingReportField)
	}
	if r.Suggestions == nil {
		return fmt.Errorf("%w: suggestions", ErrMissingReportField)
	}
	return nil
}

// Severity returns the severity bucket of the overall score.
func (r *Report) Severity() Severity {
	return ScoreSeverity(r.OverallScore)
}

// HasCriticalIssues reports whether the critical-issues section has content.
func (r *Report) HasCriticalIssues() bool {
	return len(r.CriticalIssues) > 0
}

// HasQuickWins reports whether the quick-wins section has content.
func (r *Report) HasQuickWins() bool {
	return len(r.QuickWins) > 0
}

// CountByPriority returns how many suggestions have the given priority.
func (r *Report) CountByPriority(p Priority) int {
	n := 0
	for _, s := range r.Suggestions {
		if s.Priority == p {
			n++
		}
	}
	return n
}

// CategoryScore is one entry of the ordered category score list.
type CategoryScore struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
}

// Severity returns the severity bucket of the score.
func (c CategoryScore) Severity() Severity {
	return ScoreSeverity(c.Score)
}

// Scores is an ordered category-name to score mapping.
//
// The analysis output encodes scores as a JSON object, whose key order Go
// maps would lose. Scores decodes the object token by token so the report
// renders categories in the order they were produced. A list of
// {name, score} objects is accepted as well.
type Scores []CategoryScore

// Get returns the score of the named category.
func (s Scores) Get(name string) (int, bool) {
	for _, c := range s {
		if c.Name == name {
			return c.Score, true
		}
	}
	return 0, false
}

// Names returns the category names in order.
func (s Scores) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// roundScore rounds a decoded score to an int. Values beyond the int32
// range are pinned to its bounds so that the conversion stays defined; display
// clamps them to the score range later. NaN becomes zero.
func roundScore(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= math.MinInt32:
		return math.MinInt32
	case v >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(math.Round(v))
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scores) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []CategoryScore
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if list == nil {
			list = make([]CategoryScore, 0)
		}
		*s = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scores: expected object or array, got %v", tok)
	}

	out := make(Scores, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("scores: unexpected key %v", keyTok)
		}
		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("scores: category %q: %w", name, err)
		}
		out = append(out, CategoryScore{Name: name, Score: roundScore(value)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// MarshalJSON implements json.Marshaler, writing an object in list order.
func (s Scores) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", c.Score)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
func (s *Scores) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []CategoryScore
		if err := value.Decode(&list); err != nil {
			return err
		}
		if list == nil {
			list = make([]CategoryScore, 0)
		}
		*s = list
		return nil
	case yaml.MappingNode:
		out := make(Scores, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			var score float64
			if err := val.Decode(&score); err != nil {
				return fmt.Errorf("scores: category %q: %w", key.Value, err)
			}
			out = append(out, CategoryScore{Name: key.Value, Score: roundScore(score)})
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("scores: line %d: expected mapping or sequence", value.Line)
	}
}

// MarshalYAML implements yaml.Marshaler, writing a mapping in list order.
func (s Scores) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range s {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: c.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", c.Score)},
		)
	}
	return node, nil
}
