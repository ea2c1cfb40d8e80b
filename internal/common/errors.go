package common

import (
	"errors"
	"fmt"
)

// Error kinds of the extraction engine. Concrete errors wrap these
// sentinels; callers distinguish them with errors.Is.
var (
	// ErrDocumentUnreadable covers malformed files, zero pages, and
	// permission failures from the text-extraction collaborator.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrSchemaInvalid covers empty schemas and malformed schema JSON.
	ErrSchemaInvalid = errors.New("invalid extraction schema")

	// ErrFallbackTransport covers network, auth, and service failures from
	// the generative-model call. Never conflated with "field absent".
	ErrFallbackTransport = errors.New("fallback transport failure")

	// ErrCacheIntegrity covers corrupted entries in a persistent cache.
	ErrCacheIntegrity = errors.New("cache integrity failure")
)

// WrapError adds context while keeping the sentinel reachable via errors.Is.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
