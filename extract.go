package clipdown

import (
	"context"

	"golang.org/x/net/html"
)

// Options controls which constructs the extraction engine emits.
type Options struct {
	// IncludeImages emits image references. When false, images produce no
	// output at all.
	IncludeImages bool

	// IncludeLinks emits [text](url) links. When false, links degrade to
	// their inner text.
	IncludeLinks bool

	// IncludeTables emits pipe-delimited tables. When false, table content
	// is transcoded as plain nested content.
	IncludeTables bool

	// IncludeFrontmatter prepends the metadata header block to the
	// produced document.
	IncludeFrontmatter bool
}

// DefaultOptions returns the default extraction options (everything on).
func DefaultOptions() Options {
	return Options{
		IncludeImages:      true,
		IncludeLinks:       true,
		IncludeTables:      true,
		IncludeFrontmatter: true,
	}
}

// Result holds the outcome of one extraction pass. It is immutable once
// produced and is the sole externally visible artifact of the engine.
type Result struct {
	// Markdown is the produced document, including the frontmatter header
	// when requested.
	Markdown string `json:"markdown"`

	// Title is the page title used for the frontmatter header.
	Title string `json:"title"`

	// SourceURL is the address of the extracted page.
	SourceURL string `json:"sourceUrl"`

	// Canceled marks the result of an interactive selection session that
	// was abandoned by the user. A canceled result carries no document and
	// must be distinguishable from a successful empty extraction.
	Canceled bool `json:"canceled,omitempty"`

	// Extraction statistics.
	ImageCount int `json:"imageCount"`
	LinkCount  int `json:"linkCount"`
	CharCount  int `json:"charCount"`
}

// Page bundles a parsed document with the rendering facts needed to
// extract from it. Doc is the document root; View answers rendering
// questions static parsing alone cannot (visibility, computed backgrounds,
// geometry).
type Page struct {
	// URL is the page address; relative references resolve against it.
	URL string

	// Doc is the root of the parsed HTML tree.
	Doc *html.Node

	// Root optionally pins the extraction to a caller-chosen subtree
	// (e.g., from interactive selection). When nil, a Locator picks the
	// article body.
	Root *html.Node

	// View reports rendering facts for nodes in Doc. When nil,
	// implementations fall back to static heuristics.
	View PageView
}

// Rect is an element's layout box in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PageView reports rendering facts about nodes in a parsed document.
// A browser-backed implementation answers from computed style and layout;
// a static implementation approximates from markup alone. Tests supply
// deterministic fakes.
type PageView interface {
	// IsRendered reports whether the node produces a visible layout box
	// (not display:none, visibility:hidden, or fully transparent).
	IsRendered(n *html.Node) bool

	// BackgroundImage returns the node's computed background-image value,
	// either a bare URL or a raw CSS url(...) reference, or "" if the
	// node has none.
	BackgroundImage(n *html.Node) string

	// CurrentSrc returns the browser-resolved current source of an img
	// node, or "" if unknown.
	CurrentSrc(n *html.Node) string

	// BoundingBox returns the node's layout box. ok is false when the
	// geometry is unknown (static views) or the node has no box.
	BoundingBox(n *html.Node) (rect Rect, ok bool)
}

// Locator finds the element most likely to be the primary article body.
type Locator interface {
	// Locate scans doc and returns the best candidate root. It never
	// returns nil for a well-formed document: when no candidate
	// qualifies, it falls back to the document body.
	Locate(doc *html.Node) *html.Node
}

// Extractor produces a Markdown document from a page.
type Extractor interface {
	// Extract locates the article body of page (or uses page.Root when
	// set), transcodes it to Markdown, and returns the result with
	// extraction statistics. The context carries cancellation for the
	// surrounding operation; the transcoding pass itself runs to
	// completion once started.
	Extract(ctx context.Context, page *Page, opts Options) (*Result, error)
}
