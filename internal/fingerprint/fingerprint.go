// Package fingerprint computes the content digests that key the result cache.
// Digests are deterministic and content-only: they cover the complete document
// byte stream and the complete canonical schema serialization, with no
// truncation or sampling. A false positive here would be a correctness bug,
// not a performance bug.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/joseph-ayodele/pdf-extract/constants"
	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// Document returns the SHA-256 hex digest of the exact document bytes.
func Document(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

// Schema returns the SHA-256 hex digest of the schema's canonical
// serialization, so field declaration order does not matter.
func Schema(s *schema.Schema) string {
	sum := sha256.Sum256(s.Canonical())
	return hex.EncodeToString(sum[:])
}

// Key returns the cache key for one extraction request: the document digest
// and the schema digest joined by a separator.
func Key(doc []byte, s *schema.Schema) string {
	return Document(doc) + constants.CacheKeySeparator + Schema(s)
}
