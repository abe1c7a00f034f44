package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gq "github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/clipdown"
	"github.com/fwojciec/clipdown/extract"
	"github.com/fwojciec/clipdown/fs"
	clipdownhttp "github.com/fwojciec/clipdown/http"
	"github.com/fwojciec/clipdown/rod"
	clipslog "github.com/fwojciec/clipdown/slog"
)

// snapshotter is the optional capability of fetchers that can bake
// rendering facts into the markup they return.
type snapshotter interface {
	Snapshot(ctx context.Context, url string) (string, error)
}

// Run executes the clip: fetch every URL, extract, and write results.
func (c *CLI) Run(deps *Dependencies) error {
	if c.Output != "" && len(c.URLs) > 1 {
		return clipdown.Errorf(clipdown.EINVALID, "-o accepts a single URL; use --dir for multiple pages")
	}
	if c.Output != "" && c.Dir != "" {
		return clipdown.Errorf(clipdown.EINVALID, "-o and --dir are mutually exclusive")
	}
	if c.Concurrency < 1 {
		return clipdown.Errorf(clipdown.EINVALID, "concurrency must be at least 1")
	}

	logger := slog.New(slog.NewTextHandler(deps.Stderr, nil))

	fetcher := deps.Fetcher
	if fetcher == nil {
		var err error
		if fetcher, err = c.newFetcher(); err != nil {
			return err
		}
		defer fetcher.Close()
	}

	var view clipdown.PageView
	if c.Browser {
		view = rod.NewView()
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = extract.NewService(view, c.policy())
	}
	if c.Verbose {
		fetcher = clipslog.NewLoggingFetcher(fetcher, logger)
		extractor = clipslog.NewLoggingExtractor(extractor, logger)
	}

	results := make([]*clipdown.Result, len(c.URLs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, url := range c.URLs {
		g.Go(func() error {
			result, err := c.clipOne(ctx, fetcher, extractor, view, url)
			if err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return c.write(deps, results)
}

// newFetcher builds the fetcher the flags ask for.
func (c *CLI) newFetcher() (clipdown.Fetcher, error) {
	if c.Browser {
		return rod.NewFetcher()
	}
	return clipdownhttp.NewFetcher(), nil
}

// clipOne fetches and extracts a single page.
func (c *CLI) clipOne(ctx context.Context, fetcher clipdown.Fetcher, extractor clipdown.Extractor, view clipdown.PageView, url string) (*clipdown.Result, error) {
	var rawHTML string
	var err error
	if snap, ok := fetcher.(snapshotter); ok && c.Browser {
		rawHTML, err = snap.Snapshot(ctx, url)
	} else {
		rawHTML, err = fetcher.Fetch(ctx, url)
	}
	if err != nil {
		return nil, err
	}

	page, err := extract.ParsePage(rawHTML, url, view)
	if err != nil {
		return nil, err
	}

	if c.Selector != "" {
		root, err := selectRoot(page.Doc, c.Selector)
		if err != nil {
			return nil, err
		}
		page.Root = root
	}

	return extractor.Extract(ctx, page, c.options())
}

// selectRoot resolves a caller-supplied CSS selector to an extraction
// root.
func selectRoot(doc *html.Node, selector string) (*html.Node, error) {
	sel := gq.NewDocumentFromNode(doc).Find(selector)
	if len(sel.Nodes) == 0 {
		return nil, clipdown.Errorf(clipdown.ENOTFOUND, "no element matches selector %q", selector)
	}
	return sel.Nodes[0], nil
}

// write delivers results in input order: stdout by default, a single
// file with -o, one file per page with --dir.
func (c *CLI) write(deps *Dependencies, results []*clipdown.Result) error {
	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0755); err != nil {
			return err
		}
		writer := fs.NewWriter(c.Dir)
		for _, result := range results {
			path, err := writer.Write(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
		}
		return nil
	}

	if c.Output != "" {
		if err := os.MkdirAll(filepath.Dir(c.Output), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(c.Output, []byte(results[0].Markdown), 0644); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, c.Output)
		return nil
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintln(deps.Stdout, result.Markdown)
	}
	return nil
}
