package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// GroupRoot marks a line item that sits directly under the table root,
// not covered by any retained subtotal.
const GroupRoot = -1

// LineItem is a normalized revenue line: either a leaf item or a
// retained subtotal row. The grand total is never a LineItem in a
// table's item list; it is carried separately.
type LineItem struct {
	Title      string
	Amount     decimal.Decimal // always in millions
	IsSubtotal bool

	// IsTotal marks the row chosen as the table's grand total during
	// classification. Such a row is removed from the item list before
	// assembly and never serialized.
	IsTotal bool

	// SourceRow is the index of the originating RawRow, a back-reference
	// only. Group is the item-list index of the covering retained
	// subtotal, or GroupRoot.
	SourceRow int
	Group     int
}

// MarshalJSON emits the wire shape {title, amount, is_subtotal} with a
// plain JSON number for the amount.
func (li LineItem) MarshalJSON() ([]byte, error) {
	amount, _ := li.Amount.Float64()
	return json.Marshal(struct {
		Title      string  `json:"title"`
		Amount     float64 `json:"amount"`
		IsSubtotal bool    `json:"is_subtotal"`
	}{li.Title, amount, li.IsSubtotal})
}

// Table is the assembled result of one extraction. TotalRevenue is nil
// when no grand total row could be identified.
type Table struct {
	Title        string
	Items        []LineItem
	TotalRevenue *decimal.Decimal
}

// MarshalJSON emits the primary output contract:
//
//	{"table_title": ..., "revenue_items": [...], "table_total_revenue": ...}
func (t *Table) MarshalJSON() ([]byte, error) {
	var total *float64
	if t.TotalRevenue != nil {
		v, _ := t.TotalRevenue.Float64()
		total = &v
	}
	items := t.Items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(struct {
		TableTitle   string     `json:"table_title"`
		RevenueItems []LineItem `json:"revenue_items"`
		TotalRevenue *float64   `json:"table_total_revenue"`
	}{t.Title, items, total})
}

// ReconStatus is the outcome of reconciling leaf sums against the
// reported grand total.
type ReconStatus string

const (
	ReconOK              ReconStatus = "ok"
	ReconWithinTolerance ReconStatus = "within-tolerance"
	ReconFailed          ReconStatus = "failed"
)

// ReconciliationReport is the out-of-band arithmetic check consumed by
// monitoring, not part of the primary table JSON.
type ReconciliationReport struct {
	Expected      decimal.Decimal `json:"expected"`
	Actual        decimal.Decimal `json:"actual"`
	Discrepancy   decimal.Decimal `json:"discrepancy"`
	ToleranceUsed decimal.Decimal `json:"tolerance_used"`
	Status        ReconStatus     `json:"status"`
}
