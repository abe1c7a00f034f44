package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
	"github.com/fwojciec/clipdown/extract"
)

// findFirst returns the first element named tag in depth-first order.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

const selectionPage = `<html><head><title>T</title></head><body>
<div id="wrap">
<span>tiny</span>
<p>A paragraph with comfortably more than thirty characters of visible prose.</p>
</div>
</body></html>`

func TestSession_Choose(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(selectionPage, "https://example.com/pick", nil)
	require.NoError(t, err)

	opts := clipdown.DefaultOptions()
	opts.IncludeFrontmatter = false
	session := testService().StartSelection(page, opts)

	result, done, err := session.Poll()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Nil(t, result)

	session.Choose(context.Background(), findFirst(page.Doc, "p"))

	result, done, err = session.Poll()
	require.NoError(t, err)
	require.True(t, done)
	require.NotNil(t, result)
	assert.False(t, result.Canceled)
	assert.Equal(t, "A paragraph with comfortably more than thirty characters of visible prose.", result.Markdown)
}

func TestSession_ChooseGrowsSmallTargets(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(selectionPage, "https://example.com/pick", nil)
	require.NoError(t, err)

	opts := clipdown.DefaultOptions()
	opts.IncludeFrontmatter = false
	session := testService().StartSelection(page, opts)

	// The span alone is below the threshold; the wrapping div is not.
	session.Choose(context.Background(), findFirst(page.Doc, "span"))

	result, done, err := session.Poll()
	require.NoError(t, err)
	require.True(t, done)
	assert.Contains(t, result.Markdown, "tiny")
	assert.Contains(t, result.Markdown, "A paragraph with comfortably")
}

func TestSession_Cancel(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(selectionPage, "https://example.com/pick", nil)
	require.NoError(t, err)

	session := testService().StartSelection(page, clipdown.DefaultOptions())
	session.Cancel()

	result, done, err := session.Poll()
	require.NoError(t, err)
	require.True(t, done)
	require.NotNil(t, result)
	assert.True(t, result.Canceled)
	assert.Empty(t, result.Markdown)
	assert.Equal(t, "https://example.com/pick", result.SourceURL)
}

func TestSession_CompletesOnce(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(selectionPage, "https://example.com/pick", nil)
	require.NoError(t, err)

	opts := clipdown.DefaultOptions()
	opts.IncludeFrontmatter = false
	session := testService().StartSelection(page, opts)

	session.Choose(context.Background(), findFirst(page.Doc, "p"))
	session.Cancel() // ignored

	result, done, err := session.Poll()
	require.NoError(t, err)
	require.True(t, done)
	assert.False(t, result.Canceled)
}
