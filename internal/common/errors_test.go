package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "ignored"))

	err := WrapError(ErrDocumentUnreadable, "pdftotext failed")
	assert.True(t, errors.Is(err, ErrDocumentUnreadable))
	assert.Contains(t, err.Error(), "pdftotext failed")

	// Double wrapping keeps the sentinel reachable.
	outer := WrapError(err, "extract")
	assert.True(t, errors.Is(outer, ErrDocumentUnreadable))
}
