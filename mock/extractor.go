package mock

import (
	"context"

	"github.com/fwojciec/clipdown"
)

var _ clipdown.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of clipdown.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, page *clipdown.Page, opts clipdown.Options) (*clipdown.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, page *clipdown.Page, opts clipdown.Options) (*clipdown.Result, error) {
	return e.ExtractFn(ctx, page, opts)
}
