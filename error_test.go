package sitecrawl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitecrawl.Errorf(sitecrawl.EINVALID, "seed %q is not absolute", "/docs")

	assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	assert.Equal(t, "seed \"/docs\" is not absolute", sitecrawl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitecrawl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitecrawl.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load config: %w", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "missing"))

	assert.Equal(t, sitecrawl.ENOTFOUND, sitecrawl.ErrorCode(err))
	assert.Equal(t, "missing", sitecrawl.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, sitecrawl.EINTERNAL, sitecrawl.ErrorCode(err))
	assert.Equal(t, "Internal error", sitecrawl.ErrorMessage(err))
}

func TestErrorCode_Rejection(t *testing.T) {
	t.Parallel()

	err := &sitecrawl.Rejection{Link: "mailto:a@b.c", Reason: sitecrawl.RejectNonHTTPScheme}

	assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	assert.Contains(t, sitecrawl.ErrorMessage(err), "non-http-scheme")
}
