package model

import (
	"regexp"
	"strings"
	"time"
)

// DefaultFilePrefix is prepended to generated document names.
const DefaultFilePrefix = "seo-report"

// schemePattern matches a leading URL scheme such as "https://".
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// FileName derives the output document name for a site.
// The scheme is stripped, '/' and ':' become '_', and the ISO calendar
// date and extension are appended:
//
//	FileName("seo-report", "https://example.com/blog", d, "pdf")
//	// seo-report_example.com_blog_2026-10-19.pdf
func FileName(prefix, siteURL string, date time.Time, ext string) string {
	site := schemePattern.ReplaceAllString(strings.TrimSpace(siteURL), "")
	site = strings.NewReplacer("/", "_", ":", "_").Replace(site)

	var sb strings.Builder
	if prefix != "" {
		sb.WriteString(prefix)
		sb.WriteByte('_')
	}
	sb.WriteString(site)
	sb.WriteByte('_')
	sb.WriteString(date.Format(time.DateOnly))
	if ext != "" {
		sb.WriteByte('.')
		sb.WriteString(strings.TrimPrefix(ext, "."))
	}
	return sb.String()
}
