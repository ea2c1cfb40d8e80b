// Command analyze runs extraction over every entry of a dataset file,
// prints an aggregate coverage summary, and can export an XLSX report,
// serve Prometheus metrics, and keep watching the document roots for
// changed files.
//
// Usage:
//
//	analyze [-xlsx report.xlsx] [-metrics :9100] [-watch dir] <dataset.{yaml,json}>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joseph-ayodele/pdf-extract/internal/analysis"
	"github.com/joseph-ayodele/pdf-extract/internal/cache"
	"github.com/joseph-ayodele/pdf-extract/internal/common"
	"github.com/joseph-ayodele/pdf-extract/internal/dataset"
	"github.com/joseph-ayodele/pdf-extract/internal/extract"
	"github.com/joseph-ayodele/pdf-extract/internal/heuristics"
	"github.com/joseph-ayodele/pdf-extract/internal/ingest"
	"github.com/joseph-ayodele/pdf-extract/internal/llm/openai"
	"github.com/joseph-ayodele/pdf-extract/internal/metrics"
	"github.com/joseph-ayodele/pdf-extract/internal/pdftext"
)

func main() {
	xlsxPath := flag.String("xlsx", "", "write an XLSX coverage report to this path")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (e.g. :9100)")
	watchRoot := flag.String("watch", "", "after the run, watch this directory and re-extract changed documents")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] <dataset.{yaml,json}>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, flag.Arg(0), *xlsxPath, *metricsAddr, *watchRoot); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, datasetPath, xlsxPath, metricsAddr, watchRoot string) error {
	cfg := common.LoadConfig()

	entries, err := dataset.Load(datasetPath)
	if err != nil {
		return err
	}
	logger.Info("analysis.dataset_loaded", "path", datasetPath, "entries", len(entries))

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

	m := metrics.New()
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			logger.Info("metrics.listen", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
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
		m,
		logger,
	)
	svc := analysis.NewService(orch, logger)

	stats, sum := svc.Run(ctx, entries)
	printSummary(sum)

	if xlsxPath != "" {
		report, err := analysis.WriteReportXLSX(stats, sum)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxPath, report, 0o644); err != nil {
			return fmt.Errorf("write report %s: %w", xlsxPath, err)
		}
		logger.Info("analysis.report_written", "path", xlsxPath, "bytes", len(report))
	}

	if watchRoot != "" {
		return watch(ctx, logger, svc, entries, watchRoot)
	}
	return nil
}

// watch re-runs extraction for dataset entries whose document changed on
// disk. Entries are matched by path.
func watch(ctx context.Context, logger *slog.Logger, svc *analysis.Service, entries []dataset.Entry, root string) error {
	byPath := dataset.IndexByPath(entries)

	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:    []string{root},
		Debounce: 500 * time.Millisecond,
	})
	if err != nil {
		return err
	}
	logger.Info("analysis.watching", "root", root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errCh:
			if ok && err != nil {
				logger.Error("watch error", "error", err)
			}
		case path, ok := <-evCh:
			if !ok {
				return nil
			}
			e, known := byPath[dataset.NormalizePath(path)]
			if !known {
				logger.Info("analysis.watch_skip", "path", path)
				continue
			}
			_, sum := svc.Run(ctx, []dataset.Entry{e})
			printSummary(sum)
		}
	}
}

func printSummary(sum analysis.Summary) {
	fmt.Printf("files: %d (failed %d)\n", sum.Files, sum.Failed)
	fmt.Printf("fields: %d total, %d found (%d heuristics, %d fallback)\n",
		sum.TotalFields, sum.FoundFields, sum.HeuristicFields, sum.FallbackFields)
	if sum.TotalFields > 0 {
		fmt.Printf("coverage: %.1f%% (heuristics %.1f%%)\n",
			float64(sum.FoundFields)/float64(sum.TotalFields)*100,
			float64(sum.HeuristicFields)/float64(sum.TotalFields)*100)
	}
}
