package readdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/readdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := readdoc.Errorf(readdoc.ENOTFOUND, "object %q not found", "uploads/a.docx")

	assert.Equal(t, readdoc.ENOTFOUND, readdoc.ErrorCode(err))
	assert.Equal(t, "object \"uploads/a.docx\" not found", readdoc.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("decoding input: %w", readdoc.Errorf(readdoc.EMALFORMED, "not a zip archive"))

	assert.Equal(t, readdoc.EMALFORMED, readdoc.ErrorCode(err))
	assert.Equal(t, "not a zip archive", readdoc.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, readdoc.EINTERNAL, readdoc.ErrorCode(err))
	assert.Equal(t, "Internal error.", readdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, readdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, readdoc.ErrorMessage(nil))
}
