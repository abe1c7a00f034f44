package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

// placeholderKeywords mark spacer, placeholder, and loading assets that
// carry no content value.
var placeholderKeywords = []string{
	"placeholder",
	"spacer",
	"blank",
	"loading",
	"spinner",
	"pixel",
	"transparent",
	"1x1",
	"grey.gif",
	"gray.gif",
}

// minInlineImageLen is the size below which a data: image is assumed to be
// a spinner or low-quality preview rather than real content.
const minInlineImageLen = 2000

// IsPlaceholder reports whether a URL points at a non-content filler
// asset. Empty URLs, URLs containing a placeholder keyword, and short
// inline data images all qualify.
func IsPlaceholder(u string) bool {
	if u == "" {
		return true
	}
	lower := strings.ToLower(u)
	for _, kw := range placeholderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if strings.HasPrefix(lower, "data:image") && len(u) < minInlineImageLen {
		return true
	}
	return false
}

// lazyAttrs are the lazy-load attribute names probed for an image source,
// in priority order.
var lazyAttrs = []string{
	"data-src",
	"data-lazy-src",
	"data-original",
	"data-url",
	"data-image",
	"data-img-src",
	"data-full-src",
	"data-echo",
	"data-lazy",
}

// BestImageSource determines the single best real source URL for an img
// node. Candidates are tried in strict priority order: the rendered
// current source, the declared src, lazy-load attributes, the srcset
// candidate list, and finally the declared or rendered source even if it
// looks like a placeholder, as long as it is not a data URI. The result is
// resolved to absolute form; "" means no usable source exists.
func BestImageSource(n *html.Node, view clipdown.PageView, res *Resolver) string {
	current := view.CurrentSrc(n)
	if current != "" && !IsPlaceholder(current) {
		return res.Resolve(current)
	}

	src := dom.GetAttributeOr(n, "src", "")
	if src != "" && !IsPlaceholder(src) && !strings.HasPrefix(src, "data:") {
		return res.Resolve(src)
	}

	for _, name := range lazyAttrs {
		if v := dom.GetAttributeOr(n, name, ""); v != "" && !IsPlaceholder(v) {
			return res.Resolve(v)
		}
	}

	srcset := dom.GetAttributeOr(n, "srcset", "")
	if srcset == "" {
		srcset = dom.GetAttributeOr(n, "data-srcset", "")
	}
	if best := BestFromSrcset(srcset); best != "" && !IsPlaceholder(best) {
		return res.Resolve(best)
	}

	// Last resort: accept a probable placeholder over nothing, but never a
	// data URI.
	if src != "" && !strings.HasPrefix(src, "data:") {
		return res.Resolve(src)
	}
	if current != "" && !strings.HasPrefix(current, "data:") {
		return res.Resolve(current)
	}

	return ""
}

// BestFromSrcset picks the highest-resolution candidate from a srcset
// attribute value. Width descriptors (640w) rank by their width; density
// descriptors (2x) rank as value*1000 so they stay proportionally below
// explicit widths. Candidates without a usable descriptor keep first-seen
// order as the fallback.
func BestFromSrcset(set string) string {
	var best string
	bestWidth := -1

	for _, entry := range strings.Split(set, ",") {
		fields := strings.Fields(strings.TrimSpace(entry))
		if len(fields) == 0 {
			continue
		}
		u := fields[0]
		width := 0
		if len(fields) > 1 {
			desc := fields[1]
			if strings.HasSuffix(desc, "w") {
				if v, err := strconv.Atoi(strings.TrimSuffix(desc, "w")); err == nil {
					width = v
				}
			} else if strings.HasSuffix(desc, "x") {
				if v, err := strconv.ParseFloat(strings.TrimSuffix(desc, "x"), 64); err == nil {
					width = int(v * 1000)
				}
			}
		}
		if width > bestWidth {
			best = u
			bestWidth = width
		}
	}

	return best
}

var cssURLRe = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

// BackgroundImage extracts the first url(...) reference from the node's
// computed background-image, rejecting placeholders and resolving the
// result to absolute form. Returns "" when the node has no usable
// background image.
func BackgroundImage(n *html.Node, view clipdown.PageView, res *Resolver) string {
	bg := view.BackgroundImage(n)
	if bg == "" || bg == "none" {
		return ""
	}
	u := bg
	if m := cssURLRe.FindStringSubmatch(bg); m != nil {
		u = m[1]
	}
	if IsPlaceholder(u) {
		return ""
	}
	return res.Resolve(u)
}
