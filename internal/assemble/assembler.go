// Package assemble builds the final Table from classified items: the
// item list in document order, the grand total carried separately, and
// a title taken from the caption or inferred from the leaf labels.
package assemble

import (
	"regexp"
	"strings"

	"github.com/rezonia/revenue-extractor/internal/classify"
	"github.com/rezonia/revenue-extractor/internal/model"
)

// Titles used when no explicit caption is available.
const (
	TitleByProduct   = "Revenue by Product and Service"
	TitleByGeography = "Revenue by Geography"
	TitleMixed       = "Revenue by Product and Geography"
)

// unitNoteRe matches caption parentheticals that describe units rather
// than subject matter, e.g. "(in millions, except per share data)".
var unitNoteRe = regexp.MustCompile(`(?i)\s*\([^)]*(?:million|thousand|billion|except|unaudited|dollar)[^)]*\)`)

// Assemble produces the final Table. An explicit caption always wins;
// otherwise the title is inferred from the leaf labels.
func Assemble(caption string, cls classify.Classification) *model.Table {
	table := &model.Table{
		Title: Title(caption, cls.Items),
		Items: cls.Items,
	}
	if cls.Total != nil {
		amount := cls.Total.Amount
		table.TotalRevenue = &amount
	}
	return table
}

// Title resolves the table title from the caption, falling back to
// label inference.
func Title(caption string, items []model.LineItem) string {
	c := unitNoteRe.ReplaceAllString(caption, "")
	c = strings.Trim(strings.TrimSpace(c), ":")
	if c != "" {
		return c
	}
	return inferTitle(items)
}

// inferTitle looks at the leaf labels: all geographic names mean a
// geography breakdown, none means products and services, a genuine mix
// of both means the table carries both axes.
func inferTitle(items []model.LineItem) string {
	geo, product := 0, 0
	for _, it := range items {
		if it.IsSubtotal {
			continue
		}
		switch {
		case isGeographic(it.Title):
			geo++
		case isNeutral(it.Title):
		default:
			product++
		}
	}
	switch {
	case geo > 0 && product == 0:
		return TitleByGeography
	case geo > 0 && product > 0:
		return TitleMixed
	default:
		return TitleByProduct
	}
}

var geographicTerms = []string{
	"united states", "u.s.", "usa", "domestic",
	"canada", "mexico", "brazil", "latin america", "americas",
	"europe", "emea", "germany", "france", "united kingdom", "u.k.",
	"ireland", "italy", "spain", "netherlands", "switzerland",
	"asia", "apac", "china", "japan", "korea", "india", "taiwan",
	"singapore", "australia", "africa", "middle east",
	"international", "foreign", "other countries", "rest of world",
	"rest of the world",
}

func isGeographic(label string) bool {
	l := strings.ToLower(label)
	for _, term := range geographicTerms {
		if strings.Contains(l, term) {
			return true
		}
	}
	return false
}

// Labels that say nothing about the breakdown axis.
func isNeutral(label string) bool {
	l := strings.ToLower(label)
	return l == "other" || l == "all other" || l == "corporate and other"
}
