// Package htmltable converts one HTML table, as found in an inline-XBRL
// 10-K filing, into the raw row sequence the extraction pipeline
// consumes. It is the table-ingestion collaborator: everything it emits
// is (label, value, indent, style hints); interpretation happens
// downstream.
package htmltable

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rezonia/revenue-extractor/internal/model"
)

// Filings indent nested line items in steps of roughly one em;
// 12 horizontal pixels count as one level.
const indentStepPx = 12.0

var (
	digitRe  = regexp.MustCompile(`\d`)
	indentRe = regexp.MustCompile(`(?:padding-left|margin-left|text-indent)\s*:\s*([\d.]+)\s*(?:px|pt)`)
	boldRe   = regexp.MustCompile(`font-weight\s*:\s*(?:bold|[6-9]00)`)
	shadeRe  = regexp.MustCompile(`background(?:-color)?\s*:\s*(#[0-9a-fA-F]{3,8}|rgb[^;]*|[a-zA-Z]+)`)
)

// Adapter reads rows out of one HTML table.
type Adapter struct {
	valueColumn int
}

// Option configures the adapter
type Option func(*Adapter)

// WithValueColumn selects which numeric column holds the amounts.
// Filings list the most recent fiscal year first, so the default is
// column 0.
func WithValueColumn(idx int) Option {
	return func(a *Adapter) {
		a.valueColumn = idx
	}
}

// New creates an adapter with the given options
func New(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Parse converts the first <table> element in the fragment into an
// extraction input. Presentation rows (spacers, year headers) come out
// as valueless rows the normalizer will skip.
func (a *Adapter) Parse(tableHTML string) (*model.Input, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tableHTML))
	if err != nil {
		return nil, model.NewIngestError("htmltable", "unparseable HTML", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, model.NewIngestError("htmltable", "no table element in fragment", nil)
	}

	in := &model.Input{
		Caption: strings.TrimSpace(table.Find("caption").First().Text()),
	}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row, ok := a.parseRow(tr)
		if ok {
			in.Rows = append(in.Rows, row)
		}
	})

	return in, nil
}

func (a *Adapter) parseRow(tr *goquery.Selection) (model.RawRow, bool) {
	var labelCell *goquery.Selection
	var label string
	var values []string
	var pendingOpen bool

	tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := cleanCellText(cell.Text())
		if text == "" {
			return
		}
		if labelCell == nil && !looksNumeric(text) && text != "(" {
			labelCell = cell
			label = text
			return
		}
		if v, ok := numericCellValue(text, &values, &pendingOpen); ok {
			if pendingOpen {
				v = "(" + v
				pendingOpen = false
			}
			values = append(values, v)
		}
	})

	if label == "" && len(values) == 0 {
		return model.RawRow{}, false
	}

	row := model.RawRow{Label: label}
	if a.valueColumn < len(values) {
		row.RawValue = values[a.valueColumn]
	}
	if labelCell != nil {
		row.IndentLevel = indentLevel(tr, labelCell)
		row.Styles = styleHints(tr, labelCell, row.IndentLevel)
	}
	return row, true
}

// numericCellValue decides whether a cell belongs to the value columns.
// Filings habitually render the currency symbol and both parentheses of
// a negative amount in their own cells; those fragments are folded into
// the neighboring value, an opening parenthesis forward and a closing
// one backward.
func numericCellValue(text string, prior *[]string, pending *bool) (string, bool) {
	if text == "(" {
		*pending = true
		return "", false
	}
	if text == ")" {
		if n := len(*prior); n > 0 {
			(*prior)[n-1] += ")"
		}
		return "", false
	}
	if text == "$" || text == "€" || text == "£" || text == "%" {
		return "", false
	}
	if !digitRe.MatchString(text) && !isDashPlaceholder(text) {
		return "", false
	}
	return text, true
}

func looksNumeric(text string) bool {
	t := strings.Trim(text, "$€£()%— ")
	if t == "" {
		return isDashPlaceholder(text) || strings.Trim(text, "$€£% ") == ""
	}
	t = strings.ReplaceAll(t, ",", "")
	_, err := strconv.ParseFloat(t, 64)
	return err == nil
}

func isDashPlaceholder(text string) bool {
	switch strings.TrimSpace(text) {
	case "-", "–", "—", "‒":
		return true
	}
	return false
}

func cleanCellText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

func indentLevel(tr, cell *goquery.Selection) int {
	px := indentPx(cell.AttrOr("style", "")) + indentPx(tr.AttrOr("style", ""))
	// Nested presentation divs carry their own padding.
	cell.Find("div, p, span").Each(func(_ int, inner *goquery.Selection) {
		px += indentPx(inner.AttrOr("style", ""))
	})
	return int(px / indentStepPx)
}

func indentPx(style string) float64 {
	total := 0.0
	for _, m := range indentRe.FindAllStringSubmatch(strings.ToLower(style), -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += v
		}
	}
	return total
}

func styleHints(tr, cell *goquery.Selection, indent int) model.StyleSet {
	var styles model.StyleSet

	style := strings.ToLower(cell.AttrOr("style", "") + ";" + tr.AttrOr("style", ""))
	bold := boldRe.MatchString(style) ||
		cell.Find("b, strong").Length() > 0 ||
		cell.Closest("b, strong").Length() > 0
	if !bold {
		cell.Find("[style]").EachWithBreak(func(_ int, inner *goquery.Selection) bool {
			if boldRe.MatchString(strings.ToLower(inner.AttrOr("style", ""))) {
				bold = true
				return false
			}
			return true
		})
	}
	if bold {
		styles = append(styles, model.StyleBold)
	}

	if m := shadeRe.FindStringSubmatch(style); m != nil && !isWhite(m[1]) {
		styles = append(styles, model.StyleShaded)
	}
	if cell.Find("i, em").Length() > 0 || strings.Contains(style, "font-style:italic") {
		styles = append(styles, model.StyleItalic)
	}
	if indent > 0 {
		styles = append(styles, model.StyleIndented)
	}
	return styles
}

func isWhite(color string) bool {
	switch strings.ToLower(color) {
	case "#fff", "#ffffff", "white", "transparent", "none", "inherit":
		return true
	}
	return false
}

// IsRevenueTag reports whether a us-gaap fact name marks a revenue
// disclosure, the same filter the filing walker applies before pulling
// tables.
func IsRevenueTag(name string) bool {
	tag := strings.ToLower(strings.TrimPrefix(strings.ToLower(name), "us-gaap:"))
	return strings.HasPrefix(tag, "revenue")
}
