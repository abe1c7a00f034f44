package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/clipdown"
	"github.com/fwojciec/clipdown/mock"
	clipslog "github.com/fwojciec/clipdown/slog"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs counters and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, page *clipdown.Page, opts clipdown.Options) (*clipdown.Result, error) {
				return &clipdown.Result{Markdown: "# T", CharCount: 3, ImageCount: 2, LinkCount: 5}, nil
			},
		}

		extractor := clipslog.NewLoggingExtractor(inner, logger)
		result, err := extractor.Extract(context.Background(),
			&clipdown.Page{URL: "https://example.com/post"}, clipdown.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, "# T", result.Markdown)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "url=https://example.com/post")
		assert.Contains(t, output, "chars=3")
		assert.Contains(t, output, "images=2")
		assert.Contains(t, output, "links=5")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, page *clipdown.Page, opts clipdown.Options) (*clipdown.Result, error) {
				return nil, errors.New("no content")
			},
		}

		extractor := clipslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract(context.Background(),
			&clipdown.Page{URL: "https://example.com/post"}, clipdown.DefaultOptions())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"no content\"")
	})
}
