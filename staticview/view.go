// Package staticview approximates rendering facts from markup alone, for
// documents fetched without a browser. It reads inline style attributes
// and the hidden attribute; geometry is unknown.
package staticview

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

// Ensure View implements clipdown.PageView at compile time.
var _ clipdown.PageView = (*View)(nil)

// View is a clipdown.PageView backed by static markup inspection.
type View struct{}

// NewView creates a View.
func NewView() *View {
	return &View{}
}

// IsRendered reports false for elements hidden by the hidden attribute or
// an inline display:none, visibility:hidden, or zero-opacity style.
func (v *View) IsRendered(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "hidden" {
			return false
		}
	}

	style := styleProps(dom.GetAttributeOr(n, "style", ""))
	if style["display"] == "none" || style["visibility"] == "hidden" {
		return false
	}
	switch style["opacity"] {
	case "0", "0.0", "0%":
		return false
	}
	return true
}

// BackgroundImage returns the inline background-image value, or the image
// reference of an inline background shorthand. The raw CSS value is
// returned; url(...) extraction is the caller's concern.
func (v *View) BackgroundImage(n *html.Node) string {
	style := styleProps(dom.GetAttributeOr(n, "style", ""))
	if bg, ok := style["background-image"]; ok {
		return bg
	}
	if bg, ok := style["background"]; ok && strings.Contains(bg, "url(") {
		return bg
	}
	return ""
}

// CurrentSrc approximates the rendered source with the declared src
// attribute.
func (v *View) CurrentSrc(n *html.Node) string {
	return dom.GetAttributeOr(n, "src", "")
}

// BoundingBox always reports unknown geometry.
func (v *View) BoundingBox(*html.Node) (clipdown.Rect, bool) {
	return clipdown.Rect{}, false
}

// styleProps parses an inline style attribute into a property map. Values
// are lowercased and trimmed; url(...) contents keep their case via the
// raw value.
func styleProps(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		if !strings.Contains(value, "url(") {
			value = strings.ToLower(value)
		}
		props[name] = value
	}
	return props
}
