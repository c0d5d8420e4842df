package model

// Severity is the display bucket applied uniformly to numeric scores and
// suggestion priorities. The same three colors serve both.
type Severity int

const (
	// SeverityGood marks healthy scores (>= 80) and low priority suggestions.
	SeverityGood Severity = iota

	// SeverityWarning marks middling scores (60-79) and medium priority suggestions.
	SeverityWarning

	// SeverityCritical marks failing scores (< 60) and high priority suggestions.
	SeverityCritical
)

// Score thresholds for the severity buckets.
const (
	// GoodThreshold is the lowest score rendered as SeverityGood.
	GoodThreshold = 80

	// WarningThreshold is the lowest score rendered as SeverityWarning.
	WarningThreshold = 60

	// MinScore and MaxScore bound every score in a valid report.
	MinScore = 0
	MaxScore = 100
)

// String returns a human-readable representation of the severity bucket.
func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "GOOD"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ScoreSeverity maps a score to its severity bucket.
// It never fails: scores outside [0,100] fall into the nearest bucket so
// that upstream data violating the range still renders.
func ScoreSeverity(score int) Severity {
	switch {
	case score >= GoodThreshold:
		return SeverityGood
	case score >= WarningThreshold:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// PrioritySeverity maps a suggestion priority to its severity bucket.
// High is Critical, Medium is Warning, Low is Good. Unknown values are
// treated as Low.
func PrioritySeverity(p Priority) Severity {
	switch p {
	case PriorityHigh:
		return SeverityCritical
	case PriorityMedium:
		return SeverityWarning
	default:
		return SeverityGood
	}
}

// ClampScore limits a score to [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
