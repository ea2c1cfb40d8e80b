package extract

import "context"

// TextExtractor turns document bytes into already-normalized UTF-8 text.
// Implementations fail with an error wrapping common.ErrDocumentUnreadable
// for malformed, password-protected, or zero-page documents.
type TextExtractor interface {
	Text(ctx context.Context, doc []byte) (string, error)
}
