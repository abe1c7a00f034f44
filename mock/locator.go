package mock

import (
	"golang.org/x/net/html"

	"github.com/fwojciec/clipdown"
)

var _ clipdown.Locator = (*Locator)(nil)

// Locator is a mock implementation of clipdown.Locator.
type Locator struct {
	LocateFn func(doc *html.Node) *html.Node
}

func (l *Locator) Locate(doc *html.Node) *html.Node {
	return l.LocateFn(doc)
}
