package rod_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
	"github.com/fwojciec/clipdown/rod"
)

// snapshotPage mimics the markup a Snapshot produces: rendering facts
// baked into data-cm-* attributes.
const snapshotPage = `<html><body data-cm-rect="0 0 1000 2000">
<div id="page" data-cm-rect="0 0 1000 2000">
<div id="banner" data-cm-hidden data-cm-rect="0 0 1000 50">ad</div>
<div id="hero" data-cm-bg='url("https://e.com/hero.jpg")' data-cm-rect="0 50 1000 400"></div>
<article data-cm-rect="100 450 800 1200">
<img id="photo" src="/low.jpg" data-cm-src="https://e.com/high.jpg" data-cm-rect="100 500 600 300">
<p id="prose" data-cm-rect="100 850 800 100">text</p>
</article>
<span id="unmeasured">no geometry</span>
</div>
</body></html>`

func parseSnapshot(t *testing.T) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(snapshotPage))
	require.NoError(t, err)
	return doc
}

func elementByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := elementByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func TestView_IsRendered(t *testing.T) {
	t.Parallel()

	doc := parseSnapshot(t)
	v := rod.NewView()

	assert.False(t, v.IsRendered(elementByID(doc, "banner")))
	assert.True(t, v.IsRendered(elementByID(doc, "prose")))
}

func TestView_IsRendered_FallsBackToInlineStyle(t *testing.T) {
	t.Parallel()

	n := &html.Node{Type: html.ElementNode, Data: "div", Attr: []html.Attribute{
		{Key: "style", Val: "display: none"},
	}}

	assert.False(t, rod.NewView().IsRendered(n))
}

func TestView_BackgroundImage(t *testing.T) {
	t.Parallel()

	doc := parseSnapshot(t)
	v := rod.NewView()

	assert.Equal(t, `url("https://e.com/hero.jpg")`, v.BackgroundImage(elementByID(doc, "hero")))
	assert.Empty(t, v.BackgroundImage(elementByID(doc, "prose")))
}

func TestView_CurrentSrc(t *testing.T) {
	t.Parallel()

	doc := parseSnapshot(t)
	v := rod.NewView()

	// The browser-recorded source wins over the declared src attribute.
	assert.Equal(t, "https://e.com/high.jpg", v.CurrentSrc(elementByID(doc, "photo")))
}

func TestView_BoundingBox(t *testing.T) {
	t.Parallel()

	doc := parseSnapshot(t)
	v := rod.NewView()

	rect, ok := v.BoundingBox(elementByID(doc, "photo"))
	require.True(t, ok)
	assert.Equal(t, clipdown.Rect{X: 100, Y: 500, Width: 600, Height: 300}, rect)

	_, ok = v.BoundingBox(elementByID(doc, "unmeasured"))
	assert.False(t, ok)
}

func TestView_ElementAt(t *testing.T) {
	t.Parallel()

	doc := parseSnapshot(t)
	v := rod.NewView()

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"inside image", 200, 600, "photo"},
		{"inside paragraph", 200, 900, "prose"},
		{"article outside children", 150, 1500, ""},
		{"hero banner area", 500, 100, "hero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := v.ElementAt(doc, tt.x, tt.y)
			require.NotNil(t, got)
			if tt.want == "" {
				assert.Equal(t, "article", got.Data)
				return
			}
			assert.Equal(t, tt.want, attrValue(got, "id"))
		})
	}
}

func TestView_ElementAt_NoHit(t *testing.T) {
	t.Parallel()

	doc := parseSnapshot(t)

	assert.Nil(t, rod.NewView().ElementAt(doc, 5000, 5000))
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
