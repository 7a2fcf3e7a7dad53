package model

import "fmt"

// WarningCode identifies a non-fatal anomaly detected during
// extraction. Row-level problems are absorbed (skip-and-continue);
// table-level problems degrade or annotate the output. None of these
// suppress the result.
type WarningCode string

const (
	WarnMalformedRow         WarningCode = "malformed_row"
	WarnAmbiguousScale       WarningCode = "ambiguous_scale"
	WarnNoGrandTotal         WarningCode = "no_grand_total"
	WarnAmbiguousTotal       WarningCode = "ambiguous_total"
	WarnSubtotalMismatch     WarningCode = "subtotal_mismatch"
	WarnReconciliationFailed WarningCode = "reconciliation_failed"
)

// Warning annotates an extraction result. Row is the index of the
// offending RawRow, or -1 when the warning concerns the whole table.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Row     int         `json:"row"`
}

// NewWarning creates a table-level warning.
func NewWarning(code WarningCode, message string) Warning {
	return Warning{Code: code, Message: message, Row: -1}
}

// NewRowWarning creates a warning tied to a specific source row.
func NewRowWarning(code WarningCode, row int, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...), Row: row}
}
