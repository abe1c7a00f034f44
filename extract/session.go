package extract

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

// minTargetText is the visible-text threshold below which a picked
// element is considered too small and replaced by its nearest
// sufficiently-sized ancestor.
const minTargetText = 30

// Session owns the state of one interactive element-selection flow. The
// host UI resolves a user gesture to an element and calls Choose (or
// Cancel); it then polls Result for the outcome. A canceled session
// yields a result with the Canceled marker set, distinguishable from a
// successful empty extraction. Sessions are safe for concurrent use by
// the choosing and polling sides.
type Session struct {
	extractor clipdown.Extractor
	page      *clipdown.Page
	opts      clipdown.Options

	mu     sync.Mutex
	result *clipdown.Result
	err    error
	done   bool
}

// StartSelection begins an interactive selection flow against the given
// page. The returned session waits for exactly one Choose or Cancel.
func (s *Service) StartSelection(page *clipdown.Page, opts clipdown.Options) *Session {
	return &Session{extractor: s, page: page, opts: opts}
}

// Choose extracts the subtree rooted at the picked element and completes
// the session. Elements with less than minTargetText visible characters
// are walked up to their nearest sufficiently-sized ancestor first.
// Calls after the session completed are ignored.
func (sn *Session) Choose(ctx context.Context, n *html.Node) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.done {
		return
	}

	page := *sn.page
	page.Root = growTarget(n)
	sn.result, sn.err = sn.extractor.Extract(ctx, &page, sn.opts)
	sn.done = true
}

// Cancel completes the session with the cancellation marker.
func (sn *Session) Cancel() {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.done {
		return
	}

	sn.result = &clipdown.Result{Canceled: true, SourceURL: sn.page.URL}
	sn.done = true
}

// Poll reports the session outcome. done is false while the session is
// still waiting for a choice.
func (sn *Session) Poll() (result *clipdown.Result, done bool, err error) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if !sn.done {
		return nil, false, nil
	}
	return sn.result, true, sn.err
}

// growTarget walks a too-small pick up to the nearest ancestor with
// enough visible text, stopping at the body.
func growTarget(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if cur.Data == "body" || cur.Data == "html" {
			return cur
		}
		if len(nodeText(cur)) >= minTargetText {
			return cur
		}
	}
	return n
}

// nodeText is the collapsed text content of a subtree.
func nodeText(n *html.Node) string {
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
	return strings.Join(strings.Fields(b.String()), " ")
}
