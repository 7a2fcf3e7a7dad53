// Package validate is the final gate: it rejects tables that are not
// revenue tables and enforces that the chosen grand total never leaks
// into the item list.
package validate

import (
	"strings"

	"github.com/rezonia/revenue-extractor/internal/classify"
	"github.com/rezonia/revenue-extractor/internal/model"
)

var (
	revenueTerms = []string{"revenue", "sales"}

	// Subjects that show up when a balance-sheet or workforce table is
	// smuggled in under a revenue tag.
	foreignSubjects = []string{
		"assets", "liabilities", "equity", "stockholders", "shareholders",
		"headcount", "employees",
	}

	currencySymbols = "$€£¥"
)

// Check decides whether the classified row set is a revenue table.
// A non-nil error is always a *model.RejectionError; the caller's
// result becomes the JSON literal null.
func Check(in model.Input, scale model.Scale, cls classify.Classification) error {
	if len(cls.Items) == 0 && cls.Total == nil {
		return model.NewRejectionError("no numeric values in the row set")
	}

	labels := make([]string, 0, len(cls.Items)+1)
	for _, it := range cls.Items {
		labels = append(labels, it.Title)
	}
	if cls.Total != nil {
		labels = append(labels, cls.Total.Title)
	}
	labels = append(labels, in.Caption)

	if containsAny(labels, revenueTerms) {
		return nil
	}
	if containsAny(labels, foreignSubjects) {
		return model.NewRejectionError("labels describe a different statement subject")
	}

	// No revenue wording at all: accept only if the table still looks
	// like a money breakdown, i.e. some row was recognized as a total
	// or subtotal, or the source carried a currency/unit hint.
	hasTotalRow := cls.Total != nil
	for _, it := range cls.Items {
		if it.IsSubtotal {
			hasTotalRow = true
			break
		}
	}
	if !hasTotalRow && !hasCurrencyHint(in, scale) {
		return model.NewRejectionError("no total rows and no currency hints")
	}
	return nil
}

// StripTotal removes any item whose title matches the chosen grand
// total's label. Classification already excludes the total row; this
// keeps the invariant even for degenerate inputs where the same label
// appears twice. Group back-references are item-list indices, so
// survivors are re-based onto the shrunken list; items whose covering
// subtotal was removed return to the root.
func StripTotal(items []model.LineItem, total *model.LineItem) []model.LineItem {
	if total == nil {
		return items
	}
	remap := make([]int, len(items))
	kept := make([]model.LineItem, 0, len(items))
	for i, it := range items {
		if strings.EqualFold(it.Title, total.Title) {
			remap[i] = model.GroupRoot
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, it)
	}
	for i := range kept {
		if g := kept[i].Group; g != model.GroupRoot {
			kept[i].Group = remap[g]
		}
	}
	return kept
}

func containsAny(labels []string, terms []string) bool {
	for _, label := range labels {
		l := strings.ToLower(label)
		for _, term := range terms {
			if strings.Contains(l, term) {
				return true
			}
		}
	}
	return false
}

func hasCurrencyHint(in model.Input, scale model.Scale) bool {
	if scale != model.ScaleUnknown {
		return true
	}
	for _, row := range in.Rows {
		if strings.ContainsAny(row.RawValue, currencySymbols) {
			return true
		}
	}
	return false
}
