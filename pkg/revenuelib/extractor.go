package revenuelib

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rezonia/revenue-extractor/internal/extractor"
	"github.com/rezonia/revenue-extractor/internal/ingest/extraction"
	"github.com/rezonia/revenue-extractor/internal/ingest/htmltable"
	"github.com/rezonia/revenue-extractor/internal/model"
	"github.com/rezonia/revenue-extractor/internal/reconcile"
)

// ExtractorOptions configures extraction behavior
type ExtractorOptions struct {
	// Reconciliation tolerances. The effective bound is the larger of
	// AbsTolerance and RelTolerance times the reported total.
	AbsTolerance decimal.Decimal
	RelTolerance decimal.Decimal

	// HTML ingestion
	ValueColumn int // which numeric column holds the fiscal year of interest (default: 0, leftmost)
}

// DefaultExtractorOptions returns default extractor options
func DefaultExtractorOptions() ExtractorOptions {
	return ExtractorOptions{
		AbsTolerance: reconcile.DefaultAbsTolerance,
		RelTolerance: reconcile.DefaultRelTolerance,
		ValueColumn:  0,
	}
}

// Extractor turns raw revenue tables into reconciled, validated
// output. It wraps the internal pipeline and the ingestion adapters.
type Extractor struct {
	pipeline *extractor.Pipeline
	html     *htmltable.Adapter
	options  ExtractorOptions
}

// NewExtractor creates an extractor with the given options
func NewExtractor(opts ExtractorOptions) *Extractor {
	if opts.AbsTolerance.IsZero() {
		opts.AbsTolerance = reconcile.DefaultAbsTolerance
	}
	if opts.RelTolerance.IsZero() {
		opts.RelTolerance = reconcile.DefaultRelTolerance
	}

	pipeline := extractor.NewPipeline(
		extractor.WithTolerances(opts.AbsTolerance, opts.RelTolerance),
	)

	return &Extractor{
		pipeline: pipeline,
		html:     htmltable.New(htmltable.WithValueColumn(opts.ValueColumn)),
		options:  opts,
	}
}

// NewDefaultExtractor creates an extractor with default options
func NewDefaultExtractor() *Extractor {
	return NewExtractor(DefaultExtractorOptions())
}

// Extract runs the full pipeline on already-parsed rows. The result
// is never nil; rejection and row-level anomalies are carried on it.
func (e *Extractor) Extract(ctx context.Context, in Input) *Result {
	return e.pipeline.Extract(ctx, in)
}

// ExtractHTML parses a filing table fragment and runs the pipeline
// on it. Returns an IngestError when the fragment has no table.
func (e *Extractor) ExtractHTML(ctx context.Context, tableHTML string) (*Result, error) {
	in, err := e.html.Parse(tableHTML)
	if err != nil {
		return nil, err
	}
	return e.pipeline.Extract(ctx, *in), nil
}

// ExtractUpstream replays a previously serialized extraction (an
// almost-JSON payload from an upstream producer) through the
// pipeline, re-running classification, reconciliation and the
// validation gate on its rows. A "no table" payload returns
// (nil, nil).
func (e *Extractor) ExtractUpstream(ctx context.Context, content string) (*Result, error) {
	in, err := extraction.Parse(content)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, nil
	}
	return e.pipeline.Extract(ctx, *in), nil
}

// ExtractBatch runs the pipeline on multiple inputs concurrently.
// Results are returned in input order; per-table failures are carried
// on the individual results, not returned as an error.
func (e *Extractor) ExtractBatch(ctx context.Context, inputs []Input) []*Result {
	results := make([]*Result, len(inputs))
	done := make(chan struct{}, len(inputs))

	for i, input := range inputs {
		go func(idx int, in model.Input) {
			results[idx] = e.pipeline.Extract(ctx, in)
			done <- struct{}{}
		}(i, input)
	}

	// Wait for all goroutines
	for range inputs {
		<-done
	}

	return results
}
