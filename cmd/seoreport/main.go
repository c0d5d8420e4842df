// Package main provides the entry point for the seoreport CLI.
//
// seoreport lays out SEO analysis results as paginated reports. It reads
// the JSON or YAML result of an analysis run and writes a PDF, a layout
// instruction dump, Markdown, or plain text.
//
// Usage:
//
//	seoreport render <report.json>
//	seoreport render --batch --output-dir reports/ results/*.json
//
// See --help for all available options.
package main

// main is the entry point for seoreport.
func main() {
	Execute()
}
