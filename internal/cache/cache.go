// Package cache stores extraction results keyed by content fingerprints.
// Entries persist for the lifetime of the owning process (memory backend) or
// of the backing file (SQLite backend); there is no eviction.
package cache

import (
	"context"

	"github.com/joseph-ayodele/pdf-extract/internal/entity"
)

// Entry is one stored extraction: the result plus the metadata of the run
// that produced it.
type Entry struct {
	Result   entity.Result   `json:"result"`
	Metadata entity.Metadata `json:"metadata"`
}

// Cache is the result-cache contract. Lookup returns (nil, nil) on a miss;
// Store inserts or overwrites, last write wins. The in-memory backend never
// errors; persistent backends surface I/O and integrity failures as distinct
// errors rather than treating them as misses.
type Cache interface {
	Lookup(ctx context.Context, key string) (*Entry, error)
	Store(ctx context.Context, key string, e Entry) error
}
