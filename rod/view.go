package rod

import (
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
	"github.com/fwojciec/clipdown/staticview"
)

// Ensure View implements clipdown.PageView at compile time.
var _ clipdown.PageView = (*View)(nil)

// View reads the data-cm-* rendering annotations a Snapshot bakes into
// the markup. Elements without annotations fall back to static
// inspection, so a View also works on partially annotated documents.
type View struct {
	fallback *staticview.View
}

// NewView creates a View.
func NewView() *View {
	return &View{fallback: staticview.NewView()}
}

// IsRendered reports false for elements the browser marked hidden.
func (v *View) IsRendered(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "data-cm-hidden" {
			return false
		}
	}
	return v.fallback.IsRendered(n)
}

// BackgroundImage returns the computed background-image the browser
// recorded, a raw CSS value.
func (v *View) BackgroundImage(n *html.Node) string {
	if bg := dom.GetAttributeOr(n, "data-cm-bg", ""); bg != "" {
		return bg
	}
	return v.fallback.BackgroundImage(n)
}

// CurrentSrc returns the source the browser actually loaded.
func (v *View) CurrentSrc(n *html.Node) string {
	if src := dom.GetAttributeOr(n, "data-cm-src", ""); src != "" {
		return src
	}
	return v.fallback.CurrentSrc(n)
}

// BoundingBox parses the recorded box geometry.
func (v *View) BoundingBox(n *html.Node) (clipdown.Rect, bool) {
	raw := dom.GetAttributeOr(n, "data-cm-rect", "")
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return clipdown.Rect{}, false
	}

	var vals [4]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return clipdown.Rect{}, false
		}
		vals[i] = f
	}
	return clipdown.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, true
}

// ElementAt finds the element a click at (x, y) would hit: the deepest
// annotated element whose bounding box contains the point, preferring
// the smallest box on ties. Returns nil when no recorded box contains
// the point.
func (v *View) ElementAt(root *html.Node, x, y float64) *html.Node {
	var best *html.Node
	var bestArea float64
	var bestDepth int

	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode {
			if rect, ok := v.BoundingBox(n); ok && contains(rect, x, y) {
				area := rect.Width * rect.Height
				if best == nil || depth > bestDepth || (depth == bestDepth && area < bestArea) {
					best = n
					bestArea = area
					bestDepth = depth
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return best
}

func contains(r clipdown.Rect, x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
