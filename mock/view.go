// Package mock provides mock implementations of clipdown interfaces for
// testing.
package mock

import (
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

var _ clipdown.PageView = (*View)(nil)

// View is a mock implementation of clipdown.PageView. Unset functions
// return permissive defaults: everything rendered, no backgrounds, no
// geometry.
type View struct {
	IsRenderedFn      func(n *html.Node) bool
	BackgroundImageFn func(n *html.Node) string
	CurrentSrcFn      func(n *html.Node) string
	BoundingBoxFn     func(n *html.Node) (clipdown.Rect, bool)
}

func (v *View) IsRendered(n *html.Node) bool {
	if v.IsRenderedFn == nil {
		return true
	}
	return v.IsRenderedFn(n)
}

func (v *View) BackgroundImage(n *html.Node) string {
	if v.BackgroundImageFn == nil {
		return ""
	}
	return v.BackgroundImageFn(n)
}

func (v *View) CurrentSrc(n *html.Node) string {
	if v.CurrentSrcFn == nil {
		return ""
	}
	return v.CurrentSrcFn(n)
}

func (v *View) BoundingBox(n *html.Node) (clipdown.Rect, bool) {
	if v.BoundingBoxFn == nil {
		return clipdown.Rect{}, false
	}
	return v.BoundingBoxFn(n)
}
