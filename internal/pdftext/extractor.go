// Package pdftext is the text-extraction collaborator: it turns a single-page
// PDF into already-normalized UTF-8 text via pdftotext. The engine treats the
// output as opaque text; no document structure is parsed here.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/joseph-ayodele/pdf-extract/internal/common"
	"github.com/joseph-ayodele/pdf-extract/internal/fingerprint"
)

// Config for the extractor.
type Config struct {
	Pdftotext string // binary name or path; default "pdftotext"
}

// Extractor shells out to pdftotext and memoizes results by document content
// hash. Like the result cache, the memo has no eviction.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	mu   sync.Mutex
	memo map[string]string
}

// NewExtractor builds an extractor using the real exec runner.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	return newExtractor(cfg, execRunner{}, logger)
}

// NewExtractorWithRunner is the seam for tests.
func NewExtractorWithRunner(cfg Config, r Runner, logger *slog.Logger) *Extractor {
	return newExtractor(cfg, r, logger)
}

func newExtractor(cfg Config, r Runner, logger *slog.Logger) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, runner: r, logger: logger, memo: make(map[string]string)}
}

// Text extracts the text of the first page. Unreadable, password-protected,
// and zero-page documents surface as ErrDocumentUnreadable.
func (e *Extractor) Text(ctx context.Context, doc []byte) (string, error) {
	if len(doc) == 0 {
		return "", common.WrapError(common.ErrDocumentUnreadable, "document is empty")
	}

	hash := fingerprint.Document(doc)
	e.mu.Lock()
	if text, ok := e.memo[hash]; ok {
		e.mu.Unlock()
		return text, nil
	}
	e.mu.Unlock()

	tmpDir, err := os.MkdirTemp("", "pdfx-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			e.logger.Warn("pdftext.tmp_cleanup_failed", "path", path, "error", err)
		}
	}(tmpDir)

	tmpFile := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(tmpFile, doc, 0o600); err != nil {
		return "", fmt.Errorf("write temp document: %w", err)
	}

	// pdftotext -f 1 -l 1 -layout -enc UTF-8 -eol unix <doc.pdf> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext,
		"-f", "1", "-l", "1", "-layout", "-enc", "UTF-8", "-eol", "unix", tmpFile, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %s: %v: %w",
			truncate(string(errb), 512), err, common.ErrDocumentUnreadable)
	}

	text := string(out)
	e.mu.Lock()
	e.memo[hash] = text
	e.mu.Unlock()

	e.logger.Debug("pdftext.ok", "doc_hash", hash, "text_bytes", len(text))
	return text, nil
}
