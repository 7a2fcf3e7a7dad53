// Package classify decides, for each normalized row, whether it is a
// leaf item, a subtotal of preceding rows, or the table's grand total,
// and assigns every covered row to its nearest enclosing subtotal.
package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	idec "github.com/rezonia/revenue-extractor/internal/decimal"
	"github.com/rezonia/revenue-extractor/internal/model"
	"github.com/rezonia/revenue-extractor/internal/normalize"
)

// Classification is the outcome of one pass over the candidate rows.
// Items holds leaves and retained subtotals in document order; the
// chosen grand total is carried separately and never appears in Items.
type Classification struct {
	Items    []model.LineItem
	Total    *model.LineItem
	Warnings []model.Warning
}

// Classify runs the hierarchy pass. When several rows qualify as the
// grand total (filings showing both "Total revenue" and "Total revenue,
// net" are common) the candidates are scored by how closely the rows
// they would cover reconcile against their amount; ties fall to the
// broader label, then to the later row. Losing candidates are dropped
// from the item list and reported as an ambiguity warning.
func Classify(cands []normalize.Candidate) Classification {
	if len(cands) == 0 {
		return Classification{}
	}

	minIndent := cands[0].Indent
	for _, c := range cands {
		if c.Indent < minIndent {
			minIndent = c.Indent
		}
	}

	totals, grands := markTotals(cands, minIndent)

	if len(grands) == 0 {
		items, _, _ := build(cands, totals, grands, -1)
		w := model.NewWarning(model.WarnNoGrandTotal, "no row matches the grand-total heuristics")
		return Classification{Items: items, Warnings: []model.Warning{w}}
	}

	best := -1
	var bestItems []model.LineItem
	var bestTotal *model.LineItem
	var bestGap decimal.Decimal
	for _, g := range grands {
		items, total, gap := build(cands, totals, grands, g)
		if best == -1 || betterGrand(cands, g, gap, best, bestGap) {
			best, bestItems, bestTotal, bestGap = g, items, total, gap
		}
	}

	var warnings []model.Warning
	for _, g := range grands {
		if g != best {
			warnings = append(warnings, model.NewRowWarning(model.WarnAmbiguousTotal, cands[g].SourceRow,
				"row %q also qualifies as the grand total; kept %q", cands[g].Title, cands[best].Title))
		}
	}

	return Classification{Items: bestItems, Total: bestTotal, Warnings: warnings}
}

// markTotals identifies total/subtotal candidates (rule: label keyword,
// or bold/shaded styling at an indent no deeper than any seen so far)
// and, among them, the rows qualified to serve as the grand total.
func markTotals(cands []normalize.Candidate, minIndent int) (totals map[int]bool, grands []int) {
	totals = make(map[int]bool)
	runningMin := cands[0].Indent
	for i, c := range cands {
		if c.Indent < runningMin {
			runningMin = c.Indent
		}
		styled := c.Styles.Has(model.StyleBold) || c.Styles.Has(model.StyleShaded)
		if !totalKeyword(c.Title) && !(styled && c.Indent <= runningMin) {
			continue
		}
		totals[i] = true
		if c.Indent == minIndent && (i == len(cands)-1 || grandLabel(c.Title)) {
			grands = append(grands, i)
		}
	}
	return totals, grands
}

func totalKeyword(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "total") || strings.Contains(l, "net revenue")
}

// grandLabel matches labels broad enough to denote the whole table's
// total even when the row is not the last one.
func grandLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "total" || l == "net revenue" || l == "net revenues" {
		return true
	}
	for _, kw := range []string{"total revenue", "total net sales", "total net revenue", "total sales"} {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// member is an uncovered entry of the root grouping: a leaf or a closed
// subtotal that no enclosing subtotal has claimed yet.
type member struct {
	item   int // index into items
	indent int
	amount decimal.Decimal
}

// closeMark records where in the membership list a processed total row
// sits, so a later subtotal only reaches back to the previous total at
// its level or shallower.
type closeMark struct {
	indent int
	pos    int
}

// build performs the single forward pass for one choice of grand total.
// grand is the candidate index serving as the grand total, or -1; other
// grand-qualified rows are dropped (they are competing duplicates, not
// subtotals). The returned gap is the absolute difference between the
// members the grand row covers and its own amount.
func build(cands []normalize.Candidate, totals map[int]bool, grands []int, grand int) ([]model.LineItem, *model.LineItem, decimal.Decimal) {
	grandSet := make(map[int]bool, len(grands))
	for _, g := range grands {
		grandSet[g] = true
	}

	items := make([]model.LineItem, 0, len(cands))
	var avail []member
	var marks []closeMark
	var total *model.LineItem
	gap := idec.Zero

	for i, c := range cands {
		switch {
		case i == grand:
			// The grand total closes the whole root: every remaining
			// member counts toward it. Members keep Group == GroupRoot.
			covered := idec.Zero
			for _, m := range avail {
				covered = covered.Add(m.amount)
			}
			gap = covered.Sub(c.Amount).Abs()
			total = &model.LineItem{
				Title:     c.Title,
				Amount:    c.Amount,
				IsTotal:   true,
				SourceRow: c.SourceRow,
				Group:     model.GroupRoot,
			}
			avail = avail[:0]
			marks = append(marks, closeMark{indent: c.Indent, pos: 0})

		case grandSet[i]:
			// A competing grand candidate under a different choice;
			// dropped here, surfaced as an ambiguity warning upstream.

		case totals[i]:
			items = append(items, model.LineItem{
				Title:      c.Title,
				Amount:     c.Amount,
				IsSubtotal: true,
				SourceRow:  c.SourceRow,
				Group:      model.GroupRoot,
			})
			closeSubtotal(items, len(items)-1, c, &avail, &marks)

		default:
			items = append(items, model.LineItem{
				Title:     c.Title,
				Amount:    c.Amount,
				SourceRow: c.SourceRow,
				Group:     model.GroupRoot,
			})
			avail = append(avail, member{item: len(items) - 1, indent: c.Indent, amount: c.Amount})
		}
	}

	return items, total, gap
}

// closeSubtotal claims every uncovered member at the subtotal's indent
// or deeper, accumulated since the previous total at its level or
// shallower, then re-enters the subtotal itself as a single member of
// the enclosing grouping.
func closeSubtotal(items []model.LineItem, idx int, c normalize.Candidate, avail *[]member, marks *[]closeMark) {
	boundary := 0
	for _, m := range *marks {
		if m.indent <= c.Indent && m.pos > boundary {
			boundary = m.pos
		}
	}
	if boundary > len(*avail) {
		boundary = len(*avail)
	}

	kept := (*avail)[:boundary:boundary]
	for _, m := range (*avail)[boundary:] {
		if m.indent >= c.Indent {
			items[m.item].Group = idx
		} else {
			kept = append(kept, m)
		}
	}
	kept = append(kept, member{item: idx, indent: c.Indent, amount: c.Amount})
	*avail = kept
	*marks = append(*marks, closeMark{indent: c.Indent, pos: len(kept)})
}

// betterGrand reports whether grand candidate a beats b: closer
// coverage first, then the broader label, then later document order.
func betterGrand(cands []normalize.Candidate, a int, aGap decimal.Decimal, b int, bGap decimal.Decimal) bool {
	if !aGap.Equal(bGap) {
		return aGap.LessThan(bGap)
	}
	wa := len(strings.Fields(cands[a].Title))
	wb := len(strings.Fields(cands[b].Title))
	if wa != wb {
		return wa < wb
	}
	return a > b
}
