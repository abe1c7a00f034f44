// Package goquery implements content location and page metadata extraction
// using CSS selector scans over the parsed document.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

// Ensure Locator implements clipdown.Locator at compile time.
var _ clipdown.Locator = (*Locator)(nil)

// prioritySelectors identify article bodies directly. They are tried in
// order and the first match with substantial text wins.
var prioritySelectors = []string{
	`[itemprop="articleBody"]`,
	".post-content",
	".entry-content",
	".article-content",
	".article-body",
	".post-body",
	".story-body",
	".post__content",
	".article__content",
	".markdown-body",
	".blog-post-content",
}

// candidateSelectors cast a wider net for the scoring pass.
var candidateSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	".post",
	".article",
	".story",
	".main-content",
	"#content",
	"#main",
	"#article",
	"#post",
}

// containerNoise marks block containers that are page furniture rather
// than content in the last-resort scan.
var containerNoise = []string{
	"sidebar", "comment", "footer", "header", "nav", "widget", "toc",
}

const (
	// minPriorityText qualifies a priority or scored candidate.
	minPriorityText = 200
	// minContainerText qualifies a generic block container.
	minContainerText = 300

	paragraphWeight = 80
	imageWeight     = 50
	articleBonus    = 1500

	containerParagraphWeight = 50
)

// Locator finds the element most likely to be the primary article body.
// A PageView filters elements without a layout box out of the last-resort
// scan; ties are broken by document order.
type Locator struct {
	view clipdown.PageView
}

// NewLocator creates a Locator. view may be nil, in which case every
// element is assumed rendered.
func NewLocator(view clipdown.PageView) *Locator {
	return &Locator{view: view}
}

// Locate scans doc and returns the best article body candidate, falling
// back to the document body when nothing qualifies.
func (l *Locator) Locate(doc *html.Node) *html.Node {
	d := goquery.NewDocumentFromNode(doc)

	// Tier 1: known article-body selectors.
	for _, selector := range prioritySelectors {
		var found *html.Node
		d.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if textLength(sel) > minPriorityText {
				found = sel.Get(0)
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	// Tier 2: score the broader candidate set.
	if best := l.bestCandidate(d); best != nil {
		return best
	}

	// Tier 3: scan generic block containers in the body.
	if best := l.bestContainer(d); best != nil {
		return best
	}

	if sel := d.Find("body"); len(sel.Nodes) > 0 {
		return sel.Nodes[0]
	}
	return doc
}

func (l *Locator) bestCandidate(d *goquery.Document) *html.Node {
	var best *html.Node
	bestScore := 0

	for _, selector := range candidateSelectors {
		d.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			length := textLength(sel)
			if length < minPriorityText {
				return
			}
			score := length +
				paragraphWeight*sel.Find("p").Length() +
				imageWeight*sel.Find("img").Length()
			if goquery.NodeName(sel) == "article" {
				score += articleBonus
			}
			if score > bestScore {
				best = sel.Get(0)
				bestScore = score
			}
		})
	}

	return best
}

func (l *Locator) bestContainer(d *goquery.Document) *html.Node {
	var best *html.Node
	bestScore := 0

	d.Find("body div, body section, body article, body main").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		if !l.rendered(n) {
			return
		}
		if noisyContainer(sel) {
			return
		}
		length := textLength(sel)
		if length < minContainerText {
			return
		}
		score := length + containerParagraphWeight*sel.Find("p").Length()
		if score > bestScore {
			best = n
			bestScore = score
		}
	})

	return best
}

// rendered reports whether the node produces a visible layout box
// according to the view. Without a view everything counts as rendered.
func (l *Locator) rendered(n *html.Node) bool {
	if l.view == nil {
		return true
	}
	if !l.view.IsRendered(n) {
		return false
	}
	if rect, ok := l.view.BoundingBox(n); ok && (rect.Width <= 0 || rect.Height <= 0) {
		return false
	}
	return true
}

// noisyContainer reports whether the element's class/id string marks it as
// page furniture.
func noisyContainer(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	s := strings.ToLower(class + " " + id)
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, kw := range containerNoise {
		if strings.Contains(s, kw) {
			return true
		}
	}
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if tok == "ad" || tok == "ads" {
			return true
		}
	}
	return false
}

// textLength measures the whitespace-collapsed visible text of a
// selection.
func textLength(sel *goquery.Selection) int {
	return len(strings.Join(strings.Fields(sel.Text()), " "))
}
