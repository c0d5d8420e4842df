package model

import "testing"

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityGood, "GOOD"},
		{SeverityWarning, "WARNING"},
		{SeverityCritical, "CRITICAL"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestScoreSeverity tests the score thresholds, including the bucket boundaries.
func TestScoreSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score    int
		expected Severity
	}{
		{100, SeverityGood},
		{80, SeverityGood},
		{79, SeverityWarning},
		{60, SeverityWarning},
		{59, SeverityCritical},
		{0, SeverityCritical},

		// Out of range values clamp into the nearest bucket.
		{150, SeverityGood},
		{-20, SeverityCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.expected.String(), func(t *testing.T) {
			t.Parallel()
			if got := ScoreSeverity(tc.score); got != tc.expected {
				t.Errorf("ScoreSeverity(%d) = %s, expected %s", tc.score, got, tc.expected)
			}
		})
	}
}

// TestPrioritySeverity tests that priorities map onto the same three buckets.
func TestPrioritySeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		priority Priority
		expected Severity
	}{
		{PriorityHigh, SeverityCritical},
		{PriorityMedium, SeverityWarning},
		{PriorityLow, SeverityGood},
		{Priority(42), SeverityGood},
	}

	for _, tc := range testCases {
		t.Run(tc.priority.String(), func(t *testing.T) {
			t.Parallel()
			if got := PrioritySeverity(tc.priority); got != tc.expected {
				t.Errorf("PrioritySeverity(%s) = %s, expected %s", tc.priority, got, tc.expected)
			}
		})
	}
}

// TestClampScore tests that scores are limited to [0,100].
func TestClampScore(t *testing.T) {
	t.Parallel()

	testCases := map[int]int{
		-1:  0,
		0:   0,
		55:  55,
		100: 100,
		101: 100,
	}
	for in, expected := range testCases {
		if got := ClampScore(in); got != expected {
			t.Errorf("ClampScore(%d) = %d, expected %d", in, got, expected)
		}
	}
}
