package markdown

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// formatTable renders a table subtree as a pipe-delimited Markdown table.
// The header comes from the thead when present; otherwise the first
// encountered row is promoted to header and removed from the body. A table
// whose header row ends up empty produces no output at all.
func (t *Transcoder) formatTable(table *html.Node, ctx *Context) string {
	var headerRow *html.Node
	thead := firstDescendant(table, "thead")
	if thead != nil {
		headerRow = firstDescendant(thead, "tr")
	}

	rows := tableRows(table, thead)
	if headerRow == nil && len(rows) > 0 {
		headerRow = rows[0]
		rows = rows[1:]
	}
	if headerRow == nil {
		return ""
	}

	header := t.rowCells(headerRow, ctx)
	if len(header) == 0 || allEmpty(header) {
		return ""
	}

	var b strings.Builder
	writeRow(&b, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)

	for _, row := range rows {
		cells := t.rowCells(row, ctx)
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		writeRow(&b, cells)
	}

	return strings.TrimRight(b.String(), "\n")
}

// tableRows collects the tr elements of a table in document order,
// excluding any inside the given thead.
func tableRows(table, thead *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c == thead {
				continue
			}
			switch dom.NodeName(c) {
			case "tr":
				rows = append(rows, c)
			case "table":
				// nested tables render as their own content
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

// rowCells transcodes the th/td cells of one row. Cell content is
// flattened to a single line with vertical bars escaped.
func (t *Transcoder) rowCells(row *html.Node, ctx *Context) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch dom.NodeName(c) {
		case "th", "td":
			cell := flattenLine(t.Children(c, ctx))
			cell = strings.ReplaceAll(cell, "|", `\|`)
			cells = append(cells, cell)
		}
	}
	return cells
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" " + cell + " |")
	}
	b.WriteString("\n")
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
