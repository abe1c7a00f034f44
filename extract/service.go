// Package extract orchestrates content location, transcoding, and metadata
// assembly into the final Markdown document.
package extract

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
	cq "github.com/fwojciec/clipdown/goquery"
	"github.com/fwojciec/clipdown/markdown"
	"github.com/fwojciec/clipdown/staticview"
)

// Ensure Service implements clipdown.Extractor at compile time.
var _ clipdown.Extractor = (*Service)(nil)

// Service assembles Markdown documents from pages. The zero value is
// usable: it locates content with the default locator and falls back to
// static rendering heuristics.
type Service struct {
	// View supplies rendering facts when the page carries none.
	View clipdown.PageView

	// Locator picks the article body when the page has no explicit root.
	Locator clipdown.Locator

	// Policy supplies the business fields of the frontmatter header.
	Policy clipdown.FrontmatterPolicy

	// Now returns the generation time for the frontmatter date. Defaults
	// to time.Now.
	Now func() time.Time
}

// NewService creates a Service with the given view and frontmatter policy.
func NewService(view clipdown.PageView, policy clipdown.FrontmatterPolicy) *Service {
	return &Service{
		View:    view,
		Locator: cq.NewLocator(view),
		Policy:  policy,
	}
}

// ParsePage parses raw HTML into a Page ready for extraction.
func ParsePage(rawHTML, pageURL string, view clipdown.PageView) (*clipdown.Page, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, clipdown.Errorf(clipdown.EINVALID, "empty HTML input")
	}
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, clipdown.Errorf(clipdown.EINVALID, "failed to parse HTML: %v", err)
	}
	return &clipdown.Page{URL: pageURL, Doc: doc, View: view}, nil
}

// Extract locates the article body of page (or uses page.Root when set),
// transcodes it, and assembles the final document with metadata.
func (s *Service) Extract(ctx context.Context, page *clipdown.Page, opts clipdown.Options) (*clipdown.Result, error) {
	if page == nil || page.Doc == nil {
		return nil, clipdown.Errorf(clipdown.EINVALID, "page with a parsed document required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := page.View
	if view == nil {
		view = s.View
	}
	if view == nil {
		view = staticview.NewView()
	}

	root := page.Root
	if root == nil {
		locator := s.Locator
		if locator == nil {
			locator = cq.NewLocator(view)
		}
		root = locator.Locate(page.Doc)
	}

	res := markdown.NewResolver(page.URL)
	mctx := markdown.NewContext(opts)
	body := markdown.Cleanup(markdown.NewTranscoder(res, view).Transcode(root, mctx))

	meta := cq.ExtractMeta(page.Doc)

	doc := body
	if opts.IncludeFrontmatter {
		cover := ""
		if meta.CoverImage != "" {
			cover = res.Resolve(meta.CoverImage)
		}
		excerpt := meta.Description
		if excerpt == "" {
			excerpt = clipdown.Excerpt(body)
		}
		doc = clipdown.Frontmatter(s.Policy, meta.Title, cover, excerpt, s.now()) + body
	}

	return &clipdown.Result{
		Markdown:   doc,
		Title:      meta.Title,
		SourceURL:  page.URL,
		ImageCount: mctx.ImageCount,
		LinkCount:  mctx.LinkCount,
		CharCount:  utf8.RuneCountInString(body),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
