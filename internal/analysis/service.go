// Package analysis runs extraction over a whole dataset, sequentially, and
// reports per-file and aggregate coverage of the heuristic and fallback
// tiers.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/pdf-extract/internal/dataset"
	"github.com/joseph-ayodele/pdf-extract/internal/entity"
	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// Extractor is the engine surface the analyzer depends on.
type Extractor interface {
	Extract(ctx context.Context, label string, s *schema.Schema, doc []byte) (entity.Result, entity.Metadata, error)
}

// FileStats summarizes one dataset entry.
type FileStats struct {
	File        string
	Label       string
	TotalFields int
	Heuristics  int
	Fallback    int
	Found       int
	Missing     int
	CacheHit    bool
	Err         error
}

// Coverage is the percentage of fields with a value.
func (f FileStats) Coverage() float64 {
	if f.TotalFields == 0 {
		return 0
	}
	return float64(f.Found) / float64(f.TotalFields) * 100
}

// HeuristicsCoverage is the percentage of fields the rule engine resolved.
func (f FileStats) HeuristicsCoverage() float64 {
	if f.TotalFields == 0 {
		return 0
	}
	return float64(f.Heuristics) / float64(f.TotalFields) * 100
}

// Summary aggregates a whole run.
type Summary struct {
	Files           int
	Failed          int
	TotalFields     int
	HeuristicFields int
	FallbackFields  int
	FoundFields     int
}

// Service drives the batch run.
type Service struct {
	extractor Extractor
	logger    *slog.Logger
}

func NewService(e Extractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{extractor: e, logger: logger}
}

// Run processes the entries strictly in order, one at a time. A failing
// entry is recorded and does not stop the run.
func (s *Service) Run(ctx context.Context, entries []dataset.Entry) ([]FileStats, Summary) {
	stats := make([]FileStats, 0, len(entries))
	var sum Summary

	for i, e := range entries {
		start := time.Now()
		s.logger.Info("analysis.file.start",
			"index", i+1, "total", len(entries),
			"file", e.PDFPath, "label", e.Label, "fields", e.Schema.Len(),
		)

		fs := s.runOne(ctx, e)
		stats = append(stats, fs)

		sum.Files++
		sum.TotalFields += fs.TotalFields
		sum.HeuristicFields += fs.Heuristics
		sum.FallbackFields += fs.Fallback
		sum.FoundFields += fs.Found
		if fs.Err != nil {
			sum.Failed++
			s.logger.Error("analysis.file.error", "file", e.PDFPath, "error", fs.Err)
			continue
		}

		s.logger.Info("analysis.file.ok",
			"file", e.PDFPath,
			"heuristics", fs.Heuristics, "fallback", fs.Fallback,
			"found", fs.Found, "missing", fs.Missing,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
	return stats, sum
}

func (s *Service) runOne(ctx context.Context, e dataset.Entry) FileStats {
	fs := FileStats{File: e.PDFPath, Label: e.Label, TotalFields: e.Schema.Len()}

	doc, err := os.ReadFile(e.PDFPath)
	if err != nil {
		fs.Err = fmt.Errorf("read document: %w", err)
		return fs
	}

	result, md, err := s.extractor.Extract(ctx, e.Label, e.Schema, doc)
	if err != nil {
		fs.Err = err
		return fs
	}

	fs.CacheHit = md.CacheHit
	fs.Heuristics = len(md.FoundByHeuristics)
	fs.Fallback = len(md.FoundByLLM)
	fs.Found = result.FoundCount()
	fs.Missing = fs.TotalFields - fs.Found
	return fs
}
