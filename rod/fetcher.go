package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/fwojciec/clipdown"
)

// Ensure Fetcher implements clipdown.Fetcher at compile time.
var _ clipdown.Fetcher = (*Fetcher)(nil)

// annotateJS bakes computed rendering facts into attributes on every
// element, so they survive HTML serialization:
//
//	data-cm-hidden  element is not rendered
//	data-cm-bg      computed background-image value (when not "none")
//	data-cm-src     currentSrc of images with a resolved source
//	data-cm-rect    bounding box as "x y w h" in CSS pixels
const annotateJS = `() => {
	for (const el of document.querySelectorAll('*')) {
		const cs = getComputedStyle(el);
		if (cs.display === 'none' || cs.visibility === 'hidden' || parseFloat(cs.opacity) === 0) {
			el.setAttribute('data-cm-hidden', '');
		}
		if (cs.backgroundImage && cs.backgroundImage !== 'none') {
			el.setAttribute('data-cm-bg', cs.backgroundImage);
		}
		if (el.currentSrc) {
			el.setAttribute('data-cm-src', el.currentSrc);
		}
		const r = el.getBoundingClientRect();
		if (r.width > 0 && r.height > 0) {
			el.setAttribute('data-cm-rect', [r.x, r.y, r.width, r.height].join(' '));
		}
	}
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *Manager
	timeout  time.Duration
	maxPages int64
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each fetch. Zero means no per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithManagerMaxPages sets the browser recycling threshold.
func WithManagerMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called
// when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.capture(ctx, url, false)
}

// Snapshot navigates to the URL, annotates every element with its
// computed rendering facts, and returns the annotated HTML. Parse the
// result with the extract package and read the facts through View.
func (f *Fetcher) Snapshot(ctx context.Context, url string) (string, error) {
	return f.capture(ctx, url, true)
}

// Close releases browser resources. Safe to call multiple times.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return f.manager.Close()
}

func (f *Fetcher) capture(ctx context.Context, url string, annotate bool) (string, error) {
	if f.closed.Load() {
		return "", clipdown.Errorf(clipdown.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer func() {
		_ = page.Close()
		f.manager.PageDone()
	}()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if annotate {
		if _, err := page.Eval(annotateJS); err != nil {
			return "", err
		}
	}

	return page.HTML()
}
