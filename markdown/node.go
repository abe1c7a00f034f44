package markdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

var spaceRe = regexp.MustCompile(`\s+`)

// collapseText collapses whitespace runs (including newlines) to single
// spaces. Leading and trailing runs become single spaces rather than
// disappearing, so words separated across nodes stay separated.
func collapseText(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}

// flattenLine collapses a fragment onto one line: newlines become spaces
// and the result is trimmed.
func flattenLine(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// rawText concatenates all text node data under n, unmodified.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			return
		}
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			walk(g)
		}
	}
	walk(n)
	return b.String()
}

// visibleText returns the collapsed, trimmed text content of n.
func visibleText(n *html.Node) string {
	return flattenLine(rawText(n))
}

// firstDescendant returns the first element with the given tag name below
// n in document order, or nil.
func firstDescendant(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if dom.NodeName(c) == tag {
				return c
			}
			if found := firstDescendant(c, tag); found != nil {
				return found
			}
		}
	}
	return nil
}

// childElement returns the first direct child element with the given tag
// name, or nil.
func childElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && dom.NodeName(c) == tag {
			return c
		}
	}
	return nil
}

// childElements returns the direct child elements with the given tag name.
func childElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && dom.NodeName(c) == tag {
			out = append(out, c)
		}
	}
	return out
}

// hasAncestor reports whether any ancestor of n has the given tag name.
func hasAncestor(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && dom.NodeName(p) == tag {
			return true
		}
	}
	return false
}

// containsImage reports whether n has an img or picture descendant.
func containsImage(n *html.Node) bool {
	return firstDescendant(n, "img") != nil || firstDescendant(n, "picture") != nil
}
