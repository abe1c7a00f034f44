package markdown

import (
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// formatList renders a ul/ol subtree. Only direct li children are
// considered. Each item's own prose goes on one line, indented two spaces
// per nesting depth; nested sublists follow on the next lines one level
// deeper, unordered sublists before ordered ones.
func (t *Transcoder) formatList(list *html.Node, ctx *Context, ordered bool, depth int) string {
	var b strings.Builder
	indent := strings.Repeat("  ", depth)
	counter := 0

	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || dom.NodeName(c) != "li" {
			continue
		}

		var prose strings.Builder
		var unordered, orderedLists []*html.Node
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			switch {
			case g.Type == html.TextNode:
				prose.WriteString(collapseText(g.Data))
			case g.Type != html.ElementNode:
				// skip comments etc.
			case dom.NodeName(g) == "ul":
				unordered = append(unordered, g)
			case dom.NodeName(g) == "ol":
				orderedLists = append(orderedLists, g)
			default:
				prose.WriteString(t.Transcode(g, ctx))
			}
		}

		counter++
		marker := "- "
		if ordered {
			marker = strconv.Itoa(counter) + ". "
		}
		b.WriteString(indent + marker + flattenLine(prose.String()) + "\n")

		for _, sub := range unordered {
			b.WriteString(t.formatList(sub, ctx, false, depth+1))
		}
		for _, sub := range orderedLists {
			b.WriteString(t.formatList(sub, ctx, true, depth+1))
		}
	}

	return b.String()
}
