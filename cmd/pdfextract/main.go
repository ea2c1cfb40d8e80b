// Command pdfextract resolves a field schema against a single PDF and
// prints the result as JSON.
//
// Usage:
//
//	pdfextract [-verbose] <label> <schema.json> <document.pdf>
//
// The schema file is a JSON object mapping field names to descriptions.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/pdf-extract/internal/cache"
	"github.com/joseph-ayodele/pdf-extract/internal/common"
	"github.com/joseph-ayodele/pdf-extract/internal/entity"
	"github.com/joseph-ayodele/pdf-extract/internal/extract"
	"github.com/joseph-ayodele/pdf-extract/internal/heuristics"
	"github.com/joseph-ayodele/pdf-extract/internal/llm/openai"
	"github.com/joseph-ayodele/pdf-extract/internal/pdftext"
	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

func main() {
	verbose := flag.Bool("verbose", false, "log every pipeline step to stderr")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pdfextract [-verbose] <label> <schema.json> <document.pdf>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}
	label, schemaPath, pdfPath := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, label, schemaPath, pdfPath); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, label, schemaPath, pdfPath string) error {
	cfg := common.LoadConfig()

	schemaJSON, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", schemaPath, err)
	}
	s, err := schema.ParseJSON(schemaJSON)
	if err != nil {
		return err
	}

	doc, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("read document %s: %w", pdfPath, err)
	}

	var store cache.Cache
	if cfg.Cache.Path != "" {
		db, err := cache.OpenSQLite(cfg.Cache.Path, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		store = db
	} else {
		store = cache.NewMemory()
	}

	resolver := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	orch := extract.NewOrchestrator(
		store,
		heuristics.NewRegistry(),
		resolver,
		pdftext.NewExtractor(pdftext.Config{Pdftotext: cfg.PDF.Pdftotext}, logger),
		nil,
		logger,
	)

	result, md, err := orch.Extract(ctx, label, s, doc)
	if err != nil {
		return err
	}

	out := struct {
		Result   entity.Result   `json:"result"`
		Metadata entity.Metadata `json:"metadata"`
	}{Result: result, Metadata: md}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
