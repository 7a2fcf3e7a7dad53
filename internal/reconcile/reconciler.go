// Package reconcile verifies that classified line items sum to their
// subtotals and to the table's reported grand total within tolerance.
package reconcile

import (
	"github.com/shopspring/decimal"

	idec "github.com/rezonia/revenue-extractor/internal/decimal"
	"github.com/rezonia/revenue-extractor/internal/model"
)

// Default tolerances: filings round to the nearest hundred-thousand or
// million, so the bound is the looser of 0.1 million absolute and 0.1%
// of the reported total.
var (
	DefaultAbsTolerance = idec.MustFromString("0.1")
	DefaultRelTolerance = idec.MustFromString("0.001")
)

// Reconciler checks sums against reported totals.
type Reconciler struct {
	abs decimal.Decimal
	rel decimal.Decimal
}

// New creates a reconciler with the given absolute and relative
// tolerance bounds.
func New(abs, rel decimal.Decimal) *Reconciler {
	return &Reconciler{abs: abs, rel: rel}
}

// NewDefault creates a reconciler with the default bounds.
func NewDefault() *Reconciler {
	return New(DefaultAbsTolerance, DefaultRelTolerance)
}

// Reconcile sums every item sitting directly under the table root
// (leaves not claimed by a retained subtotal, plus each retained
// subtotal's own amount, so covered leaves are never double counted)
// and compares the sum against the grand total. Each retained subtotal
// is also checked against the leaves it covers; mismatches there are
// reported as warnings only.
//
// A nil total yields a nil report: with nothing reported there is
// nothing to reconcile against.
func (r *Reconciler) Reconcile(items []model.LineItem, total *model.LineItem) (*model.ReconciliationReport, []model.Warning) {
	warnings := r.checkSubtotals(items)
	if total == nil {
		return nil, warnings
	}

	var roots []decimal.Decimal
	for _, it := range items {
		if it.Group == model.GroupRoot {
			roots = append(roots, it.Amount)
		}
	}
	actual := idec.Sum(roots)

	expected := total.Amount
	discrepancy := actual.Sub(expected)
	bound := idec.Tolerance(r.abs, r.rel, expected)

	status := model.ReconFailed
	switch {
	case discrepancy.IsZero():
		status = model.ReconOK
	case idec.Abs(discrepancy).LessThanOrEqual(bound):
		status = model.ReconWithinTolerance
	}

	if status == model.ReconFailed {
		warnings = append(warnings, model.NewRowWarning(model.WarnReconciliationFailed, total.SourceRow,
			"items sum to %s but the table reports %s", actual.String(), expected.String()))
	}

	return &model.ReconciliationReport{
		Expected:      expected,
		Actual:        actual,
		Discrepancy:   discrepancy,
		ToleranceUsed: bound,
		Status:        status,
	}, warnings
}

func (r *Reconciler) checkSubtotals(items []model.LineItem) []model.Warning {
	var warnings []model.Warning
	for i, it := range items {
		if !it.IsSubtotal {
			continue
		}
		var covered []decimal.Decimal
		for _, leaf := range items {
			if leaf.Group == i {
				covered = append(covered, leaf.Amount)
			}
		}
		if len(covered) == 0 {
			continue
		}
		sum := idec.Sum(covered)
		bound := idec.Tolerance(r.abs, r.rel, it.Amount)
		if !idec.WithinTolerance(it.Amount, sum, bound) {
			warnings = append(warnings, model.NewRowWarning(model.WarnSubtotalMismatch, it.SourceRow,
				"subtotal %q reports %s but its items sum to %s", it.Title, it.Amount.String(), sum.String()))
		}
	}
	return warnings
}
