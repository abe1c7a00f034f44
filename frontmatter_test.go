package clipdown_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/clipdown"
	"github.com/stretchr/testify/assert"
)

func TestFrontmatter_FieldOrder(t *testing.T) {
	t.Parallel()

	policy := clipdown.FrontmatterPolicy{
		Category:  "clipped",
		Author:    "clipdown",
		Tags:      []string{"go", "web"},
		Published: true,
	}
	date := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	got := clipdown.Frontmatter(policy, "My Post", "https://example.com/cover.jpg", "A short summary.", date)

	want := `---
title: "My Post"
cover_image: https://example.com/cover.jpg
category: clipped
tags: [go, web]
author: clipdown
published: true
excerpt: "A short summary."
date: 2026-03-14
---

`
	assert.Equal(t, want, got)
}

func TestFrontmatter_EscapesQuotes(t *testing.T) {
	t.Parallel()

	got := clipdown.Frontmatter(clipdown.DefaultPolicy(), `He said "hi"`, "", `Quote: "x"`, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, got, `title: "He said \"hi\""`)
	assert.Contains(t, got, `excerpt: "Quote: \"x\""`)
}

func TestFrontmatter_OmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	got := clipdown.Frontmatter(clipdown.DefaultPolicy(), "Title", "", "", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.NotContains(t, got, "cover_image:")
	assert.NotContains(t, got, "excerpt:")
	assert.Contains(t, got, "tags: []\n")
	assert.Contains(t, got, "date: 2026-01-02\n")
}

func TestFrontmatter_TruncatesExcerpt(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 300)
	got := clipdown.Frontmatter(clipdown.DefaultPolicy(), "Title", "", long, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, got, `excerpt: "`+strings.Repeat("a", 250)+`"`)
	assert.NotContains(t, got, strings.Repeat("a", 251))
}

func TestExcerpt_StripsMarkdownSyntax(t *testing.T) {
	t.Parallel()

	md := "# Heading\n\nSome **bold** and *italic* text with a [link](https://example.com) and ![pic](https://example.com/a.jpg).\n\n```go\nfmt.Println(\"code\")\n```\n\nMore ==marked== `code` text."

	got := clipdown.Excerpt(md)

	assert.Equal(t, "Heading Some bold and italic text with a link and . More marked code text.", got)
}

func TestExcerpt_TruncatesTo250(t *testing.T) {
	t.Parallel()

	got := clipdown.Excerpt(strings.Repeat("word ", 100))

	assert.Len(t, []rune(got), 250)
}
