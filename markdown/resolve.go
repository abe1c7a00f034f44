// Package markdown implements the content conversion engine: it walks a
// parsed HTML subtree and produces a Markdown document, resolving images
// and links to absolute references along the way.
package markdown

import (
	"net/url"
	"strings"
)

// Resolver normalizes possibly-relative URLs against the address of the
// page being extracted.
type Resolver struct {
	base *url.URL
}

// NewResolver creates a Resolver for the given page address. A page URL
// that cannot be parsed leaves the resolver without a base; relative
// references then pass through unchanged.
func NewResolver(pageURL string) *Resolver {
	base, err := url.Parse(pageURL)
	if err != nil {
		return &Resolver{}
	}
	return &Resolver{base: base}
}

// Resolve normalizes raw to an absolute URL. Empty or whitespace input
// yields "". data: URIs and already-absolute http(s) URLs pass through
// unchanged. Protocol-relative URLs are given an https scheme. Anything
// else resolves against the page address; input that cannot be resolved
// is returned unchanged. Resolve never fails.
func (r *Resolver) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "data:") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if r.base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return r.base.ResolveReference(ref).String()
}

// linkEscaper encodes the characters that would prematurely terminate
// Markdown link or image syntax. A single pass cannot double-encode.
var linkEscaper = strings.NewReplacer(
	"(", "%28",
	")", "%29",
	" ", "%20",
	"[", "%5B",
	"]", "%5D",
)

// EscapeLink percent-encodes parentheses, brackets, and spaces in a URL so
// it can be embedded in [text](url) syntax.
func EscapeLink(u string) string {
	return linkEscaper.Replace(u)
}
