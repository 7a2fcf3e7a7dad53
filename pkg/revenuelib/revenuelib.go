// Package revenuelib provides a public API for extracting and
// reconciling revenue tables from 10-K filings.
//
// This package exposes the core types for turning a semi-structured
// revenue table (rows of line items, subtotals and totals) into a
// clean, arithmetically checked representation.
//
// Example usage:
//
//	ex := revenuelib.NewDefaultExtractor()
//	result := ex.Extract(ctx, revenuelib.Input{
//	    Caption: "Revenue by segment (in millions)",
//	    Rows:    rows,
//	})
//	if result.Rejected {
//	    // not a revenue table: the JSON output is null
//	}
//	fmt.Println(result.Report.Status)
package revenuelib

import (
	"github.com/rezonia/revenue-extractor/internal/extractor"
	"github.com/rezonia/revenue-extractor/internal/model"
)

// Re-export core types for public API
type (
	RawRow               = model.RawRow
	StyleHint            = model.StyleHint
	StyleSet             = model.StyleSet
	Scale                = model.Scale
	Input                = model.Input
	LineItem             = model.LineItem
	Table                = model.Table
	ReconciliationReport = model.ReconciliationReport
	ReconStatus          = model.ReconStatus
	Warning              = model.Warning
	WarningCode          = model.WarningCode
	Result               = extractor.Result
)

// Re-export style hints
const (
	StyleBold     = model.StyleBold
	StyleItalic   = model.StyleItalic
	StyleShaded   = model.StyleShaded
	StyleIndented = model.StyleIndented
)

// Re-export scales
const (
	ScaleUnknown   = model.ScaleUnknown
	ScaleOnes      = model.ScaleOnes
	ScaleThousands = model.ScaleThousands
	ScaleMillions  = model.ScaleMillions
	ScaleBillions  = model.ScaleBillions
)

// GroupRoot marks a line item sitting directly under the table root.
const GroupRoot = model.GroupRoot

// Re-export reconciliation statuses
const (
	ReconOK              = model.ReconOK
	ReconWithinTolerance = model.ReconWithinTolerance
	ReconFailed          = model.ReconFailed
)

// Re-export warning codes
const (
	WarnMalformedRow         = model.WarnMalformedRow
	WarnAmbiguousScale       = model.WarnAmbiguousScale
	WarnNoGrandTotal         = model.WarnNoGrandTotal
	WarnAmbiguousTotal       = model.WarnAmbiguousTotal
	WarnSubtotalMismatch     = model.WarnSubtotalMismatch
	WarnReconciliationFailed = model.WarnReconciliationFailed
)

// Re-export error types
type (
	RejectionError = model.RejectionError
	IngestError    = model.IngestError
)
