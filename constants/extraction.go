package constants

import "strings"

// CacheKeySeparator joins the document and schema digests in a cache key.
const CacheKeySeparator = ":"

// DefaultPdftotext is the binary used for text extraction when
// PDFTOTEXT_BIN is not set.
const DefaultPdftotext = "pdftotext"

// AllowedExtensions holds the file extensions the batch analyzer watches.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
