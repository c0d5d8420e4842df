package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testReportJSON = `{
  "siteUrl": "https://example.com",
  "targetKeywords": "running shoes",
  "date": "2026-10-19",
  "overallScore": 68,
  "scores": {"technical": 80, "content": 55, "links": 72},
  "criticalIssues": ["Missing H1 on the home page"],
  "suggestions": [
    {"category": "content", "title": "Add an H1", "description": "Every page needs one heading.", "priority": "high", "impact": "Clearer topic signal"},
    {"category": "technical", "title": "Compress images", "description": "Serve WebP.", "priority": "medium", "impact": "Faster pages"}
  ],
  "quickWins": ["Add meta descriptions"]
}`

// testEnv is a temporary directory holding a report and a configuration
// file, so that tests never pick up a configuration from the home directory.
type testEnv struct {
	dir    string
	report string
	config string
}

// newTestEnv creates a test environment with the given configuration.
func newTestEnv(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:    dir,
		report: filepath.Join(dir, "result.json"),
		config: filepath.Join(dir, ".seoreport"),
	}
	if err := os.WriteFile(env.report, []byte(testReportJSON), 0600); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}
	if err := os.WriteFile(env.config, []byte(configYAML), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return env
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
