package extract_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
	"github.com/fwojciec/clipdown/extract"
	"github.com/fwojciec/clipdown/mock"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="My Article">
<meta name="description" content="What the article is about.">
<meta property="og:image" content="/img/cover.jpg">
</head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>My Article</h1>
<p>This paragraph carries enough prose to make the article the clear extraction
candidate for the scoring pass, with room to spare beyond the threshold the
locator applies to candidate containers of this kind.</p>
<p>See <a href="/more">the follow-up</a> for details.</p>
<img src="https://e.com/photo.jpg" alt="photo">
</article>
<footer>footer junk</footer>
</body>
</html>`

func testService() *extract.Service {
	svc := extract.NewService(&mock.View{}, clipdown.FrontmatterPolicy{
		Category:  "clipped",
		Author:    "tester",
		Published: true,
	})
	svc.Now = func() time.Time { return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Extract(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(articlePage, "https://example.com/posts/1", nil)
	require.NoError(t, err)

	got, err := testService().Extract(context.Background(), page, clipdown.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "My Article", got.Title)
	assert.Equal(t, "https://example.com/posts/1", got.SourceURL)
	assert.Equal(t, 1, got.ImageCount)
	assert.Equal(t, 1, got.LinkCount)
	assert.False(t, got.Canceled)
	assert.Positive(t, got.CharCount)

	assert.True(t, strings.HasPrefix(got.Markdown, "---\n"), "expected frontmatter header")
	assert.Contains(t, got.Markdown, `title: "My Article"`)
	assert.Contains(t, got.Markdown, "cover_image: https://example.com/img/cover.jpg")
	assert.Contains(t, got.Markdown, `excerpt: "What the article is about."`)
	assert.Contains(t, got.Markdown, "date: 2026-08-24")
	assert.Contains(t, got.Markdown, "# My Article")
	assert.Contains(t, got.Markdown, "[the follow-up](https://example.com/more)")
	assert.Contains(t, got.Markdown, "![photo](https://e.com/photo.jpg)")
	assert.NotContains(t, got.Markdown, "footer junk")
	assert.NotContains(t, got.Markdown, "Home")
}

func TestService_ExtractWithoutFrontmatter(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(articlePage, "https://example.com/posts/1", nil)
	require.NoError(t, err)

	opts := clipdown.DefaultOptions()
	opts.IncludeFrontmatter = false
	got, err := testService().Extract(context.Background(), page, opts)
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(got.Markdown, "---"))
	assert.True(t, strings.HasPrefix(got.Markdown, "# My Article"))
}

func TestService_ExtractUsesCallerRoot(t *testing.T) {
	t.Parallel()

	svc := testService()
	svc.Locator = &mock.Locator{LocateFn: func(*html.Node) *html.Node {
		t.Fatal("locator must not be consulted for caller-supplied roots")
		return nil
	}}

	page, err := extract.ParsePage(articlePage, "https://example.com/posts/1", nil)
	require.NoError(t, err)

	// Pin extraction to the first paragraph only.
	root := page.Doc
	page.Root = findFirst(root, "p")
	require.NotNil(t, page.Root)

	opts := clipdown.DefaultOptions()
	opts.IncludeFrontmatter = false
	got, err := svc.Extract(context.Background(), page, opts)
	require.NoError(t, err)

	assert.Contains(t, got.Markdown, "This paragraph carries")
	assert.NotContains(t, got.Markdown, "# My Article")
}

func TestService_ExtractExcerptFallsBackToBody(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(`<html><head><title>T</title></head><body><article><p>`+
		strings.Repeat("Plain prose sentence. ", 20)+`</p></article></body></html>`,
		"https://example.com/x", nil)
	require.NoError(t, err)

	got, err := testService().Extract(context.Background(), page, clipdown.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, got.Markdown, `excerpt: "Plain prose sentence.`)
}

func TestService_ExtractRejectsNilPage(t *testing.T) {
	t.Parallel()

	_, err := testService().Extract(context.Background(), nil, clipdown.DefaultOptions())

	require.Error(t, err)
	assert.Equal(t, clipdown.EINVALID, clipdown.ErrorCode(err))
}

func TestService_ExtractHonorsContext(t *testing.T) {
	t.Parallel()

	page, err := extract.ParsePage(articlePage, "https://example.com/posts/1", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = testService().Extract(ctx, page, clipdown.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePage_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := extract.ParsePage("   ", "https://example.com", nil)

	require.Error(t, err)
	assert.Equal(t, clipdown.EINVALID, clipdown.ErrorCode(err))
}
