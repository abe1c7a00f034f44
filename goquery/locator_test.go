package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	cq "github.com/fwojciec/clipdown/goquery"
	"github.com/fwojciec/clipdown/mock"
)

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text produces filler prose of roughly n characters.
func text(n int) string {
	return strings.Repeat("lorem ipsum dolor sit amet ", n/27+1)[:n]
}

func TestLocator_PrioritySelectorWins(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<div class="content"><p>` + text(400) + `</p></div>
<div class="entry-content" id="target"><p>` + text(250) + `</p></div>
</body></html>`

	got := cq.NewLocator(nil).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "target", attrOf(got, "id"))
}

func TestLocator_ShortPriorityMatchIsSkipped(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<div class="entry-content">short</div>
<article id="target"><p>` + text(300) + `</p></article>
</body></html>`

	got := cq.NewLocator(nil).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "target", attrOf(got, "id"))
}

func TestLocator_ArticleBonusBeatsPlainContainer(t *testing.T) {
	t.Parallel()

	// The div has more text, but not enough to outweigh the article tag
	// bonus.
	page := `<html><body>
<div class="content"><p>` + text(900) + `</p></div>
<article id="target"><p>` + text(600) + `</p></article>
</body></html>`

	got := cq.NewLocator(nil).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "target", attrOf(got, "id"))
}

func TestLocator_FirstMaxWinsOnTies(t *testing.T) {
	t.Parallel()

	body := "<p>" + text(400) + "</p>"
	page := `<html><body>
<article id="first">` + body + `</article>
<article id="second">` + body + `</article>
</body></html>`

	got := cq.NewLocator(nil).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "first", attrOf(got, "id"))
}

func TestLocator_GenericContainerScan(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<div class="sidebar"><p>` + text(500) + `</p></div>
<div id="target"><p>` + text(350) + `</p></div>
<div><p>short</p></div>
</body></html>`

	got := cq.NewLocator(nil).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "target", attrOf(got, "id"))
}

func TestLocator_GenericScanSkipsUnrendered(t *testing.T) {
	t.Parallel()

	view := &mock.View{IsRenderedFn: func(n *html.Node) bool {
		return attrOf(n, "data-test-hidden") == ""
	}}

	page := `<html><body>
<div data-test-hidden><p>` + text(800) + `</p></div>
<div id="target"><p>` + text(400) + `</p></div>
</body></html>`

	got := cq.NewLocator(view).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "target", attrOf(got, "id"))
}

func TestLocator_FallsBackToBody(t *testing.T) {
	t.Parallel()

	page := `<html><body><p>tiny page</p></body></html>`

	got := cq.NewLocator(nil).Locate(parse(t, page))

	require.NotNil(t, got)
	assert.Equal(t, "body", got.Data)
}
