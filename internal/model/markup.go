package model

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes HTML tags from analysis text and unescapes entities.
// The analysis step writes free text that is usually plain but sometimes
// carries inline tags such as <strong> or <br>; a paginated document must
// not print them literally. <br> and block-level closing tags become line
// breaks so that intended structure survives.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.TrimSpace(sb.String())
			}
			// Malformed input: fall back to the raw text.
			return s
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if breaksLine(string(name), tt) {
				sb.WriteByte('\n')
			}
		default:
			// Comments and doctypes carry no visible text.
		}
	}
}

// breaksLine reports whether a tag produces a line break in plain text.
func breaksLine(tag string, tt html.TokenType) bool {
	switch tag {
	case "br":
		return true
	case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
		return tt == html.EndTagToken
	default:
		return false
	}
}

// Normalize returns a copy of the report with markup stripped and
// surrounding whitespace trimmed from every text field. The receiver is
// not modified.
func (r *Report) Normalize() *Report {
	clean := func(s string) string {
		return strings.TrimSpace(StripMarkup(s))
	}
	cleanAll := func(in []string) []string {
		if in == nil {
			return nil
		}
		out := make([]string, len(in))
		for i, s := range in {
			out[i] = clean(s)
		}
		return out
	}

	n := &Report{
		SiteURL:        strings.TrimSpace(r.SiteURL),
		TargetKeywords: clean(r.TargetKeywords),
		Date:           strings.TrimSpace(r.Date),
		OverallScore:   r.OverallScore,
		CriticalIssues: cleanAll(r.CriticalIssues),
		QuickWins:      cleanAll(r.QuickWins),
	}

	if r.Scores != nil {
		n.Scores = make(Scores, len(r.Scores))
		for i, c := range r.Scores {
			n.Scores[i] = CategoryScore{Name: clean(c.Name), Score: c.Score}
		}
	}

	if r.Suggestions != nil {
		n.Suggestions = make([]Suggestion, len(r.Suggestions))
		for i, s := range r.Suggestions {
			n.Suggestions[i] = Suggestion{
				Category:    clean(s.Category),
				Title:       clean(s.Title),
				Description: clean(s.Description),
				Priority:    s.Priority,
				Impact:      clean(s.Impact),
			}
		}
	}

	return n
}
