package markdown

import (
	"regexp"
	"strings"
)

var (
	trailingWSRe   = regexp.MustCompile(`(?m)[ \t]+$`)
	manyNewlinesRe = regexp.MustCompile(`\n{4,}`)
)

// Cleanup normalizes the whitespace of a produced document: trailing
// horizontal whitespace is stripped per line (which also blanks
// whitespace-only lines), runs of four or more newlines collapse to three,
// and the whole document is trimmed.
func Cleanup(doc string) string {
	doc = trailingWSRe.ReplaceAllString(doc, "")
	doc = manyNewlinesRe.ReplaceAllString(doc, "\n\n\n")
	return strings.TrimSpace(doc)
}
