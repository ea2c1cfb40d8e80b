// Package extract is the cascading controller over the three resolution
// tiers: result cache, heuristic rule engine, generative-model fallback.
// Tiers run in strict order and short-circuit as soon as every requested
// field is resolved.
package extract

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/joseph-ayodele/pdf-extract/internal/cache"
	"github.com/joseph-ayodele/pdf-extract/internal/common"
	"github.com/joseph-ayodele/pdf-extract/internal/entity"
	"github.com/joseph-ayodele/pdf-extract/internal/fingerprint"
	"github.com/joseph-ayodele/pdf-extract/internal/heuristics"
	"github.com/joseph-ayodele/pdf-extract/internal/llm"
	"github.com/joseph-ayodele/pdf-extract/internal/metrics"
	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// Orchestrator owns the cache and coordinates one extraction request at a
// time per cache key. The current contract is sequential; the singleflight
// group guarantees at most one in-flight computation per key if callers ever
// run concurrently, so duplicate fallback invocations cannot happen.
type Orchestrator struct {
	cache    cache.Cache
	rules    *heuristics.Registry
	fallback llm.FieldResolver
	text     TextExtractor
	logger   *slog.Logger
	metrics  *metrics.Metrics
	group    singleflight.Group
}

// NewOrchestrator wires the tiers together. metrics may be nil.
func NewOrchestrator(
	c cache.Cache,
	rules *heuristics.Registry,
	fallback llm.FieldResolver,
	text TextExtractor,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cache:    c,
		rules:    rules,
		fallback: fallback,
		text:     text,
		logger:   logger,
		metrics:  m,
	}
}

type outcome struct {
	result   entity.Result
	metadata entity.Metadata
}

// Extract resolves every field of the schema against the document, cheapest
// tier first. Every schema key is present in the result, holding a value or
// the explicit not-found marker. Nothing is cached when any tier fails.
func (o *Orchestrator) Extract(ctx context.Context, label string, s *schema.Schema, doc []byte) (entity.Result, entity.Metadata, error) {
	if s == nil || s.Len() == 0 {
		return nil, entity.Metadata{}, common.WrapError(common.ErrSchemaInvalid, "schema has no fields")
	}

	key := fingerprint.Key(doc, s)
	v, err, _ := o.group.Do(key, func() (any, error) {
		return o.run(ctx, label, s, doc, key)
	})
	if err != nil {
		return nil, entity.Metadata{}, err
	}
	out := v.(*outcome)
	return out.result.Clone(), out.metadata, nil
}

func (o *Orchestrator) run(ctx context.Context, label string, s *schema.Schema, doc []byte, key string) (*outcome, error) {
	start := time.Now()

	entry, err := o.cache.Lookup(ctx, key)
	if err != nil {
		return nil, common.WrapError(err, "cache lookup")
	}
	if entry != nil {
		o.countCache(true)
		o.observe("cache_hit", start)
		md := entry.Metadata
		md.CacheHit = true
		o.logger.Info("extract.cache_hit", "label", label, "cache_key", key)
		return &outcome{result: entry.Result, metadata: md}, nil
	}
	o.countCache(false)

	text, err := o.text.Text(ctx, doc)
	if err != nil {
		o.observe("error", start)
		return nil, err
	}

	result, foundByHeuristics := o.rules.Resolve(label, text, s)
	md := entity.Metadata{
		Label:             label,
		CacheKey:          key,
		HeuristicsUsed:    true,
		FoundByHeuristics: foundByHeuristics,
		TotalFields:       s.Len(),
	}
	if o.metrics != nil {
		o.metrics.HeuristicFieldsTotal.Add(float64(len(foundByHeuristics)))
	}

	missing := missingFields(s, result)
	if len(missing) == 0 {
		// Every field resolved: the fallback tier is skipped entirely.
		o.logger.Info("extract.heuristics_complete",
			"label", label, "fields", s.Len(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		o.observe("heuristics_only", start)
		return o.finish(ctx, key, result, md)
	}

	o.logger.Info("extract.fallback_needed",
		"label", label,
		"found_by_heuristics", len(foundByHeuristics),
		"missing", len(missing),
	)

	subset, err := s.Subset(missing)
	if err != nil {
		return nil, err
	}
	answers, _, err := o.fallback.ResolveFields(ctx, llm.ResolveRequest{
		Label:  label,
		Text:   text,
		Fields: subset,
	})
	if err != nil {
		// A failed extraction is never stored.
		if o.metrics != nil {
			o.metrics.FallbackCallsTotal.WithLabelValues("error").Inc()
		}
		o.observe("error", start)
		return nil, common.WrapError(err, "fallback tier")
	}
	if o.metrics != nil {
		o.metrics.FallbackCallsTotal.WithLabelValues("ok").Inc()
	}

	// Merge answers for the missing complement only; heuristic values are
	// never overwritten.
	var foundByLLM []string
	for _, name := range subset.Names() {
		v := answers[name]
		result[name] = v
		if v != nil {
			foundByLLM = append(foundByLLM, name)
		}
	}
	md.LLMUsed = true
	md.FoundByLLM = foundByLLM
	if o.metrics != nil {
		o.metrics.FallbackFieldsTotal.Add(float64(len(foundByLLM)))
	}

	o.logger.Info("extract.ok",
		"label", label,
		"found_by_heuristics", len(foundByHeuristics),
		"found_by_llm", len(foundByLLM),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	o.observe("fallback", start)
	return o.finish(ctx, key, result, md)
}

// finish stores the completed extraction and assembles the outcome.
func (o *Orchestrator) finish(ctx context.Context, key string, result entity.Result, md entity.Metadata) (*outcome, error) {
	if err := o.cache.Store(ctx, key, cache.Entry{Result: result, Metadata: md}); err != nil {
		return nil, common.WrapError(err, "cache store")
	}
	return &outcome{result: result, metadata: md}, nil
}

func missingFields(s *schema.Schema, r entity.Result) []string {
	var missing []string
	for _, name := range s.Names() {
		if r[name] == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func (o *Orchestrator) countCache(hit bool) {
	if o.metrics == nil {
		return
	}
	if hit {
		o.metrics.CacheHitsTotal.Inc()
	} else {
		o.metrics.CacheMissesTotal.Inc()
	}
}

func (o *Orchestrator) observe(outcome string, start time.Time) {
	if o.metrics == nil {
		return
	}
	o.metrics.ExtractionsTotal.WithLabelValues(outcome).Inc()
	o.metrics.ExtractionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
