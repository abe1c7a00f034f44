package clipdown

import (
	"regexp"
	"strings"
	"time"
)

var (
	codeBlockRe = regexp.MustCompile("(?s)```.*?```")
	imageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
)

// maxExcerptLen is the character budget for the frontmatter excerpt field.
const maxExcerptLen = 250

// FrontmatterPolicy supplies the business-policy values of the metadata
// header. These belong to the calling application, not the extraction core,
// so they are configurable rather than hard-coded.
type FrontmatterPolicy struct {
	Category  string
	Author    string
	Tags      []string
	Published bool
}

// DefaultPolicy returns a neutral frontmatter policy.
func DefaultPolicy() FrontmatterPolicy {
	return FrontmatterPolicy{
		Category:  "article",
		Published: true,
	}
}

// Frontmatter renders the metadata header block for a document. The field
// order, quoting, escaping, and the 250-character excerpt truncation are part
// of the output contract and must stay stable for downstream consumers.
// coverURL and excerpt are omitted when empty.
func Frontmatter(policy FrontmatterPolicy, title, coverURL, excerpt string, date time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: \"")
	b.WriteString(escapeQuotes(title))
	b.WriteString("\"\n")
	if coverURL != "" {
		b.WriteString("cover_image: ")
		b.WriteString(coverURL)
		b.WriteString("\n")
	}
	b.WriteString("category: ")
	b.WriteString(policy.Category)
	b.WriteString("\n")
	b.WriteString("tags: [")
	b.WriteString(strings.Join(policy.Tags, ", "))
	b.WriteString("]\n")
	b.WriteString("author: ")
	b.WriteString(policy.Author)
	b.WriteString("\n")
	if policy.Published {
		b.WriteString("published: true\n")
	} else {
		b.WriteString("published: false\n")
	}
	if excerpt != "" {
		b.WriteString("excerpt: \"")
		b.WriteString(escapeQuotes(truncate(excerpt, maxExcerptLen)))
		b.WriteString("\"\n")
	}
	b.WriteString("date: ")
	b.WriteString(date.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	return b.String()
}

// Excerpt derives a plain-text excerpt from a Markdown document for the
// frontmatter header. Code blocks and image references are dropped, links
// keep their text, emphasis and heading markers are stripped, and
// whitespace is collapsed. The result is truncated to the excerpt budget.
func Excerpt(markdown string) string {
	s := codeBlockRe.ReplaceAllString(markdown, " ")
	s = imageRe.ReplaceAllString(s, " ")
	s = linkRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("**", "", "*", "", "~~", "", "==", "", "`", "").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, maxExcerptLen)
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
