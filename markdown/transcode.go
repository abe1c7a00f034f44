package markdown

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

// Context is the mutable state threaded through one transcoding pass. It is
// created per extraction and must never be shared between concurrent
// passes. Counters only increase during a pass.
type Context struct {
	IncludeImages bool
	IncludeLinks  bool
	IncludeTables bool

	ImageCount int
	LinkCount  int
}

// NewContext creates a Context from extraction options.
func NewContext(opts clipdown.Options) *Context {
	return &Context{
		IncludeImages: opts.IncludeImages,
		IncludeLinks:  opts.IncludeLinks,
		IncludeTables: opts.IncludeTables,
	}
}

// Transcoder converts a DOM subtree to Markdown. It consults a PageView
// for rendering facts and a Resolver for absolute URLs. A Transcoder is
// stateless across calls; all per-pass state lives in the Context.
type Transcoder struct {
	res  *Resolver
	view clipdown.PageView
}

// NewTranscoder creates a Transcoder.
func NewTranscoder(res *Resolver, view clipdown.PageView) *Transcoder {
	return &Transcoder{res: res, view: view}
}

// skipTags never contribute content.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"svg": true, "nav": true, "footer": true, "aside": true,
	"button": true, "input": true, "select": true, "textarea": true,
	"form": true, "meta": true, "link": true, "head": true,
}

// noiseKeywords flag boilerplate containers by their class or id. Matched
// as substrings of the combined class+id string.
var noiseKeywords = []string{
	"sidebar", "related", "comment", "share", "social", "widget",
	"popup", "modal", "newsletter", "cookie", "breadcrumb", "pagination",
	"table-of-contents", "advert", "sponsor", "promo", "banner",
	"subscribe",
}

// noiseTokens flag boilerplate by exact class/id token match. Kept
// separate from noiseKeywords because substring matching on short words
// like "ad" would hit legitimate classes ("header", "shadow").
var noiseTokens = map[string]bool{
	"ad": true, "ads": true, "toc": true, "menu": true, "nav": true,
}

// handler produces the Markdown for one element kind.
type handler func(t *Transcoder, n *html.Node, ctx *Context) string

var handlers map[string]handler

// The handler table references Transcode through its entries, so it is
// populated in init rather than in the var declaration.
func init() {
	handlers = map[string]handler{
		"h1": headingHandler(1),
		"h2": headingHandler(2),
		"h3": headingHandler(3),
		"h4": headingHandler(4),
		"h5": headingHandler(5),
		"h6": headingHandler(6),

		"b":      wrapHandler("**", "**"),
		"strong": wrapHandler("**", "**"),
		"i":      wrapHandler("*", "*"),
		"em":     wrapHandler("*", "*"),
		"u":      wrapHandler("<u>", "</u>"),
		"s":      wrapHandler("~~", "~~"),
		"del":    wrapHandler("~~", "~~"),
		"strike": wrapHandler("~~", "~~"),
		"mark":   wrapHandler("==", "=="),
		"sup":    wrapHandler("<sup>", "</sup>"),
		"sub":    wrapHandler("<sub>", "</sub>"),
		"abbr":   handleAbbr,

		"p":  handleParagraph,
		"br": func(*Transcoder, *html.Node, *Context) string { return "\n" },
		"hr": func(*Transcoder, *html.Node, *Context) string { return block("---") },

		"a":       handleAnchor,
		"img":     handleImage,
		"picture": handlePicture,
		"figure":  handleFigure,
		"video":   handleVideo,

		"ul": handleList,
		"ol": handleList,
		"li": handleChildren,

		"blockquote": handleBlockquote,
		"code":       handleCode,
		"kbd":        handleCode,
		"pre":        handlePre,

		"table": handleTable,
		"thead": handleChildren,
		"tbody": handleChildren,
		"tfoot": handleChildren,
		"tr":    handleChildren,
		"th":    handleChildren,
		"td":    handleChildren,

		"dl":      handleDefinitionList,
		"details": handleDetails,
		"summary": func(*Transcoder, *html.Node, *Context) string { return "" },

		"div":     handleContainer,
		"section": handleContainer,
		"article": handleContainer,
		"main":    handleContainer,
		"header":  handleContainer,
		"span":    handleChildren,
	}
}

// Transcode converts a single node (and its subtree) to Markdown. Non-
// content tags, unrendered elements, and boilerplate containers emit
// nothing; everything else dispatches by tag, with unrecognized tags
// transcoded as plain nested content.
func (t *Transcoder) Transcode(n *html.Node, ctx *Context) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return collapseText(n.Data)
	}
	if n.Type != html.ElementNode {
		return ""
	}

	name := dom.NodeName(n)
	if skipTags[name] {
		return ""
	}
	if t.view != nil && !t.view.IsRendered(n) {
		return ""
	}
	// A boilerplate-looking container with substantial text or an image is
	// kept rather than risk dropping real content.
	if isNoisy(n) && len(visibleText(n)) <= 100 && !containsImage(n) {
		return ""
	}

	if h, ok := handlers[name]; ok {
		return h(t, n, ctx)
	}
	return t.Children(n, ctx)
}

// Children concatenates the transcoding of n's child nodes in document
// order. Text runs are collapsed to single spaces.
func (t *Transcoder) Children(n *html.Node, ctx *Context) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(collapseText(c.Data))
		case html.ElementNode:
			b.WriteString(t.Transcode(c, ctx))
		}
	}
	return b.String()
}

// block pads s with newlines. Two adjacent blocks meet as a blank-line
// separation; the whitespace cleanup pass caps any deeper stacking.
func block(s string) string {
	return "\n" + s + "\n"
}

func headingHandler(level int) handler {
	prefix := strings.Repeat("#", level) + " "
	return func(t *Transcoder, n *html.Node, ctx *Context) string {
		inner := strings.TrimSpace(t.Children(n, ctx))
		if inner == "" {
			return ""
		}
		return block(prefix + inner)
	}
}

func wrapHandler(open, close string) handler {
	return func(t *Transcoder, n *html.Node, ctx *Context) string {
		inner := strings.TrimSpace(t.Children(n, ctx))
		if inner == "" {
			return ""
		}
		return open + inner + close
	}
}

func handleChildren(t *Transcoder, n *html.Node, ctx *Context) string {
	return t.Children(n, ctx)
}

func handleAbbr(t *Transcoder, n *html.Node, ctx *Context) string {
	inner := strings.TrimSpace(t.Children(n, ctx))
	if title := dom.GetAttributeOr(n, "title", ""); title != "" && inner != "" {
		return inner + " (" + title + ")"
	}
	return inner
}

func handleParagraph(t *Transcoder, n *html.Node, ctx *Context) string {
	inner := strings.TrimSpace(t.Children(n, ctx))
	if inner == "" {
		return ""
	}
	return block(inner)
}

func handleAnchor(t *Transcoder, n *html.Node, ctx *Context) string {
	if !ctx.IncludeLinks {
		return t.Children(n, ctx)
	}

	href := strings.TrimSpace(dom.GetAttributeOr(n, "href", ""))
	lower := strings.ToLower(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(lower, "javascript:") {
		return t.Children(n, ctx)
	}

	// An image-only link emits the image itself; the image wins over the
	// link wrapper.
	if img := linkedImage(n); img != nil {
		return t.Transcode(img, ctx)
	}

	resolved := t.res.Resolve(href)
	text := strings.TrimSpace(t.Children(n, ctx))
	if text == "" {
		text = resolved
	}
	ctx.LinkCount++
	return "[" + text + "](" + EscapeLink(resolved) + ")"
}

// linkedImage returns the image inside an anchor whose only content is
// that image, or nil.
func linkedImage(n *html.Node) *html.Node {
	if strings.TrimSpace(rawText(n)) != "" {
		return nil
	}
	if img := firstDescendant(n, "img"); img != nil {
		return img
	}
	return firstDescendant(n, "picture")
}

func handleImage(t *Transcoder, n *html.Node, ctx *Context) string {
	if !ctx.IncludeImages {
		return ""
	}
	src := BestImageSource(n, t.view, t.res)
	if src == "" {
		return ""
	}
	ctx.ImageCount++
	return block("![" + imageAlt(n) + "](" + EscapeLink(src) + ")")
}

// imageAlt picks the alt text for an image node: alt attribute, then
// title, then a generic label.
func imageAlt(n *html.Node) string {
	if alt := strings.TrimSpace(dom.GetAttributeOr(n, "alt", "")); alt != "" {
		return alt
	}
	if title := strings.TrimSpace(dom.GetAttributeOr(n, "title", "")); title != "" {
		return title
	}
	return "image"
}

func handlePicture(t *Transcoder, n *html.Node, ctx *Context) string {
	if !ctx.IncludeImages {
		return ""
	}
	if img := firstDescendant(n, "img"); img != nil {
		return t.Transcode(img, ctx)
	}
	for _, source := range childElements(n, "source") {
		set := dom.GetAttributeOr(source, "srcset", "")
		if set == "" {
			set = dom.GetAttributeOr(source, "data-srcset", "")
		}
		if best := BestFromSrcset(set); best != "" && !IsPlaceholder(best) {
			ctx.ImageCount++
			return block("![image](" + EscapeLink(t.res.Resolve(best)) + ")")
		}
	}
	return ""
}

func handleFigure(t *Transcoder, n *html.Node, ctx *Context) string {
	if !ctx.IncludeImages {
		return t.Children(n, ctx)
	}

	caption := ""
	if fc := firstDescendant(n, "figcaption"); fc != nil {
		caption = strings.TrimSpace(visibleText(fc))
	}

	if img := firstDescendant(n, "img"); img != nil {
		if src := BestImageSource(img, t.view, t.res); src != "" {
			alt := caption
			if alt == "" {
				alt = imageAlt(img)
			}
			ctx.ImageCount++
			out := block("![" + alt + "](" + EscapeLink(src) + ")")
			if caption != "" {
				out += "*" + caption + "*\n\n"
			}
			return out
		}
	}

	if bg := BackgroundImage(n, t.view, t.res); bg != "" {
		alt := caption
		if alt == "" {
			alt = "image"
		}
		ctx.ImageCount++
		out := block("![" + alt + "](" + EscapeLink(bg) + ")")
		if caption != "" {
			out += "*" + caption + "*\n\n"
		}
		return out
	}

	return t.Children(n, ctx)
}

func handleVideo(t *Transcoder, n *html.Node, ctx *Context) string {
	src := strings.TrimSpace(dom.GetAttributeOr(n, "src", ""))
	if src == "" {
		for _, source := range childElements(n, "source") {
			if v := strings.TrimSpace(dom.GetAttributeOr(source, "src", "")); v != "" {
				src = v
				break
			}
		}
	}
	if src == "" {
		return ""
	}
	return block("{% embed " + t.res.Resolve(src) + " %}")
}

func handleList(t *Transcoder, n *html.Node, ctx *Context) string {
	ordered := dom.NodeName(n) == "ol"
	list := strings.TrimRight(t.formatList(n, ctx, ordered, 0), "\n")
	if list == "" {
		return ""
	}
	return block(list)
}

func handleBlockquote(t *Transcoder, n *html.Node, ctx *Context) string {
	inner := strings.TrimSpace(t.Children(n, ctx))
	if inner == "" {
		return ""
	}
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return block(strings.Join(lines, "\n"))
}

func handleCode(t *Transcoder, n *html.Node, ctx *Context) string {
	// Inside a fenced block the parent pre formats everything; pass the
	// text through untouched.
	if hasAncestor(n, "pre") {
		return rawText(n)
	}
	inner := strings.TrimSpace(collapseText(rawText(n)))
	if inner == "" {
		return ""
	}
	return "`" + inner + "`"
}

func handlePre(t *Transcoder, n *html.Node, ctx *Context) string {
	lang := ""
	if code := firstDescendant(n, "code"); code != nil {
		for _, cls := range strings.Fields(dom.GetAttributeOr(code, "class", "")) {
			if strings.HasPrefix(cls, "language-") {
				lang = strings.TrimPrefix(cls, "language-")
				break
			}
		}
	}
	content := strings.TrimSpace(rawText(n))
	if content == "" {
		return ""
	}
	return block("```" + lang + "\n" + content + "\n```")
}

func handleTable(t *Transcoder, n *html.Node, ctx *Context) string {
	if !ctx.IncludeTables {
		return t.Children(n, ctx)
	}
	table := t.formatTable(n, ctx)
	if table == "" {
		return ""
	}
	return block(table)
}

func handleDefinitionList(t *Transcoder, n *html.Node, ctx *Context) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch dom.NodeName(c) {
		case "dt":
			if term := strings.TrimSpace(t.Children(c, ctx)); term != "" {
				b.WriteString("**" + term + "**\n")
			}
		case "dd":
			if desc := strings.TrimSpace(t.Children(c, ctx)); desc != "" {
				b.WriteString(": " + desc + "\n")
			}
		}
	}
	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return ""
	}
	return block(out)
}

func handleDetails(t *Transcoder, n *html.Node, ctx *Context) string {
	label := "Details"
	var summary *html.Node
	if s := childElement(n, "summary"); s != nil {
		summary = s
		if txt := strings.TrimSpace(t.Children(s, ctx)); txt != "" {
			label = txt
		}
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c == summary {
			continue
		}
		switch c.Type {
		case html.TextNode:
			b.WriteString(collapseText(c.Data))
		case html.ElementNode:
			b.WriteString(t.Transcode(c, ctx))
		}
	}

	out := "**" + label + "**"
	if body := strings.TrimSpace(b.String()); body != "" {
		out += "\n\n" + body
	}
	return block(out)
}

func handleContainer(t *Transcoder, n *html.Node, ctx *Context) string {
	content := t.Children(n, ctx)
	if ctx.IncludeImages && !containsImage(n) {
		if bg := BackgroundImage(n, t.view, t.res); bg != "" {
			ctx.ImageCount++
			content = block("![image]("+EscapeLink(bg)+")") + content
		}
	}
	return content
}

// isNoisy reports whether the element's class+id string marks it as page
// boilerplate.
func isNoisy(n *html.Node) bool {
	s := strings.ToLower(strings.TrimSpace(
		dom.GetAttributeOr(n, "class", "") + " " + dom.GetAttributeOr(n, "id", "")))
	if s == "" {
		return false
	}
	for _, kw := range noiseKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if noiseTokens[tok] {
			return true
		}
	}
	return false
}
