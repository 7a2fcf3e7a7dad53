// Package extractor chains the extraction stages: normalize rows,
// classify the hierarchy, reconcile sums, assemble the table, and gate
// the result.
package extractor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/revenue-extractor/internal/assemble"
	"github.com/rezonia/revenue-extractor/internal/classify"
	"github.com/rezonia/revenue-extractor/internal/model"
	"github.com/rezonia/revenue-extractor/internal/normalize"
	"github.com/rezonia/revenue-extractor/internal/reconcile"
	"github.com/rezonia/revenue-extractor/internal/validate"
)

// Pipeline processes one table-extraction request at a time. It holds
// no mutable state, so a single Pipeline is safe for concurrent use,
// one goroutine per table.
type Pipeline struct {
	absTolerance decimal.Decimal
	relTolerance decimal.Decimal
}

// Option configures pipeline behavior
type Option func(*Pipeline)

// WithTolerances overrides the reconciliation bounds.
func WithTolerances(abs, rel decimal.Decimal) Option {
	return func(p *Pipeline) {
		p.absTolerance = abs
		p.relTolerance = rel
	}
}

// NewPipeline creates a pipeline with the given options
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		absTolerance: reconcile.DefaultAbsTolerance,
		relTolerance: reconcile.DefaultRelTolerance,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one extraction. When Rejected is set the
// primary output is the JSON literal null and Table/Report are nil;
// warnings gathered before rejection are still carried for monitoring.
type Result struct {
	Table    *model.Table
	Report   *model.ReconciliationReport
	Warnings []model.Warning
	Rejected bool
	Error    error
}

// MarshalJSON emits the primary output contract: the table object, or
// null when the gate rejected the input. The reconciliation report is
// out-of-band and never part of this payload.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Rejected || r.Table == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Table)
}

// Extract runs the full pass over one row sequence. Row-level problems
// are absorbed as warnings; the only hard failure is a gate rejection.
// Re-running on the same input yields an identical result.
func (p *Pipeline) Extract(ctx context.Context, in model.Input) *Result {
	if err := ctx.Err(); err != nil {
		return &Result{Error: err}
	}

	var warnings []model.Warning

	scale := in.Scale
	if scale == model.ScaleUnknown {
		scale = normalize.DetectScale(in.Caption, in.Rows)
	}
	if scale == model.ScaleUnknown && hasNumericRow(in.Rows) {
		warnings = append(warnings, model.NewWarning(model.WarnAmbiguousScale,
			"no unit hint found; amounts passed through unscaled"))
	}

	norm := normalize.New(scale)
	cands := make([]normalize.Candidate, 0, len(in.Rows))
	for i, row := range in.Rows {
		cand, warn := norm.Normalize(row, i)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		if cand != nil {
			cands = append(cands, *cand)
		}
	}

	cls := classify.Classify(cands)
	warnings = append(warnings, cls.Warnings...)

	report, reconWarnings := reconcile.New(p.absTolerance, p.relTolerance).Reconcile(cls.Items, cls.Total)
	warnings = append(warnings, reconWarnings...)

	table := assemble.Assemble(in.Caption, cls)
	table.Items = validate.StripTotal(table.Items, cls.Total)

	if err := validate.Check(in, scale, cls); err != nil {
		return &Result{Rejected: true, Error: err, Warnings: warnings}
	}

	return &Result{Table: table, Report: report, Warnings: warnings}
}

func hasNumericRow(rows []model.RawRow) bool {
	for _, row := range rows {
		if strings.ContainsAny(row.RawValue, "0123456789") {
			return true
		}
	}
	return false
}
