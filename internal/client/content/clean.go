// Package content prepares chapter text and chat input for outgoing
// requests: reducing HTML to readable text, stripping site boilerplate, and
// sanitizing user-typed queries.
package content

import (
	"fmt"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

var (
	// Control whitespace, with any surrounding spaces, collapses to one space.
	controlRunRe = regexp.MustCompile(`[ ]*[\r\n\t]+[ \r\n\t]*`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// Navigation and chrome phrases that leak into extracted chapter text.
	navPhraseRe = regexp.MustCompile(`(Home|Docs|Textbook|GitHub|Next|Previous|Table of Contents|Table of contents|Contents|Navigation|Menu|Footer|Header|Copyright|©|\d+\.\s)`)
	docPhraseRe = regexp.MustCompile(`(?i)(Last updated|Edit this page|Was this page helpful|Related content|Further reading)`)
)

// SanitizeQuery collapses carriage returns, newlines, and tabs (with any
// adjacent spaces) to single spaces and trims the result. Applied to every
// outgoing chat query and selection string.
func SanitizeQuery(s string) string {
	return strings.TrimSpace(controlRunRe.ReplaceAllString(s, " "))
}

// Clean strips known navigation/boilerplate phrases from extracted chapter
// text and collapses whitespace.
func Clean(s string) string {
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = navPhraseRe.ReplaceAllString(s, "")
	s = docPhraseRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FromHTML reduces an HTML document to its readable text content.
func FromHTML(html string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return "", fmt.Errorf("parsing chapter html: %w", err)
	}
	return article.TextContent, nil
}

// Truncate limits s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
