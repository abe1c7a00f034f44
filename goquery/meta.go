package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Meta holds page-level metadata for the frontmatter header.
type Meta struct {
	Title       string
	Description string
	CoverImage  string
}

// ExtractMeta reads page metadata from meta tags, preferring Open Graph
// values and falling back to the document title and description tags.
// URLs are returned as found; resolution to absolute form is the caller's
// concern.
func ExtractMeta(doc *html.Node) Meta {
	d := goquery.NewDocumentFromNode(doc)

	m := Meta{
		Title:       metaContent(d, `meta[property="og:title"]`),
		Description: metaContent(d, `meta[name="description"]`),
		CoverImage:  metaContent(d, `meta[property="og:image"]`),
	}

	if m.Title == "" {
		m.Title = strings.TrimSpace(d.Find("title").First().Text())
	}
	if m.Title == "" {
		m.Title = strings.TrimSpace(d.Find("h1").First().Text())
	}
	if m.Description == "" {
		m.Description = metaContent(d, `meta[property="og:description"]`)
	}
	if m.CoverImage == "" {
		m.CoverImage = metaContent(d, `meta[name="twitter:image"]`)
	}

	return m
}

func metaContent(d *goquery.Document, selector string) string {
	content, _ := d.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
