package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipdown"
)

// Ensure LoggingExtractor implements clipdown.Extractor.
var _ clipdown.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-page logging.
type LoggingExtractor struct {
	next   clipdown.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next clipdown.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the extraction outcome and delegates to the wrapped
// extractor.
func (e *LoggingExtractor) Extract(ctx context.Context, page *clipdown.Page, opts clipdown.Options) (result *clipdown.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"duration", time.Since(begin),
			"err", err,
		}
		if page != nil {
			attrs = append(attrs, "url", page.URL)
		}
		if result != nil {
			attrs = append(attrs,
				"chars", result.CharCount,
				"images", result.ImageCount,
				"links", result.LinkCount,
			)
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, page, opts)
}
