package clipdown_test

import (
	"testing"

	"github.com/fwojciec/clipdown"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := clipdown.Errorf(clipdown.EINVALID, "page %q not parseable", "test")

	assert.Equal(t, clipdown.EINVALID, clipdown.ErrorCode(err))
	assert.Equal(t, "page \"test\" not parseable", clipdown.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clipdown.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clipdown.ErrorMessage(nil))
}

func TestDefaultOptions_EverythingOn(t *testing.T) {
	t.Parallel()

	opts := clipdown.DefaultOptions()

	assert.True(t, opts.IncludeImages)
	assert.True(t, opts.IncludeLinks)
	assert.True(t, opts.IncludeTables)
	assert.True(t, opts.IncludeFrontmatter)
}
