// Package fs writes extraction results as Markdown files.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/clipdown"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	dashRuns    = regexp.MustCompile(`-{2,}`)
)

// URLToPath derives a relative .md file path from a page URL.
// Example: https://example.com/posts/go-tips?ref=x → posts/go-tips.md.
// Root URLs map to index.md. Path segments are lowercased and stripped
// of characters unsafe in file names.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "index.md", nil
	}

	segments := strings.Split(path, "/")
	clean := segments[:0]
	for _, seg := range segments {
		seg = unsafeChars.ReplaceAllString(strings.ToLower(seg), "-")
		seg = dashRuns.ReplaceAllString(seg, "-")
		seg = strings.Trim(seg, "-")
		if seg != "" && seg != "." && seg != ".." {
			clean = append(clean, seg)
		}
	}
	if len(clean) == 0 {
		return "index.md", nil
	}

	last := strings.TrimSuffix(clean[len(clean)-1], ".html")
	last = strings.TrimSuffix(last, ".htm")
	clean[len(clean)-1] = last + ".md"
	return filepath.Join(clean...), nil
}

// Writer saves extraction results under a base directory, one Markdown
// file per page, at paths derived from the source URL.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write saves a result to disk and returns the path written.
func (w *Writer) Write(result *clipdown.Result) (string, error) {
	if result == nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "result required")
	}

	relPath, err := URLToPath(result.SourceURL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, []byte(result.Markdown), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
