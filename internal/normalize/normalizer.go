// Package normalize converts raw table rows into line-item candidates:
// label cleanup, tolerant amount parsing, and scale conversion to
// millions.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	idec "github.com/rezonia/revenue-extractor/internal/decimal"
	"github.com/rezonia/revenue-extractor/internal/model"
)

// Candidate is a normalized row awaiting hierarchy classification.
type Candidate struct {
	Title     string
	Amount    decimal.Decimal // in millions once the scale is known
	Indent    int
	Styles    model.StyleSet
	SourceRow int
}

var (
	footnoteRe = regexp.MustCompile(`\s*\((?:\d{1,2}|[a-z])\)\s*$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// Characters that mark a row as having no value rather than a value of
// zero: em/en dashes and friends, as rendered in filings.
var dashValues = map[string]bool{
	"":  true,
	"-": true, "–": true, "—": true, "‒": true,
	"n/a": true, "N/A": true, "*": true,
}

// Normalizer turns RawRows into Candidates at a fixed source scale.
type Normalizer struct {
	shift int32
}

// New creates a normalizer for rows reported at the given scale.
// ScaleUnknown leaves amounts untouched; the caller is responsible for
// surfacing the ambiguity.
func New(scale model.Scale) *Normalizer {
	return &Normalizer{shift: shiftToMillions(scale)}
}

func shiftToMillions(scale model.Scale) int32 {
	switch scale {
	case model.ScaleOnes:
		return -6
	case model.ScaleThousands:
		return -3
	case model.ScaleBillions:
		return 3
	default:
		// Millions and unknown pass through.
		return 0
	}
}

// Normalize converts one raw row. A nil candidate with a nil warning
// means the row carries no amount (section header, spacer) and is
// skipped. A nil candidate with a warning means the amount text was
// malformed; the row is excluded rather than aborting the table.
func (n *Normalizer) Normalize(row model.RawRow, idx int) (*Candidate, *model.Warning) {
	title := CleanLabel(row.Label)

	raw := strings.TrimSpace(row.RawValue)
	if dashValues[raw] || title == "" {
		return nil, nil
	}

	amount, err := ParseAmount(raw)
	if err != nil {
		w := model.NewRowWarning(model.WarnMalformedRow, idx, "unparseable amount %q for %q", row.RawValue, title)
		return nil, &w
	}

	if n.shift != 0 {
		amount = idec.Rescale(amount, n.shift)
	}

	return &Candidate{
		Title:     title,
		Amount:    amount,
		Indent:    row.IndentLevel,
		Styles:    row.Styles,
		SourceRow: idx,
	}, nil
}

// CleanLabel strips footnote markers, trademark symbols, bullet
// prefixes and trailing colons, and collapses whitespace.
func CleanLabel(label string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '®', '™', '℠', '©':
			return -1
		case ' ':
			return ' '
		}
		return r
	}, label)

	s = spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	s = strings.TrimPrefix(s, "- ")
	for {
		trimmed := footnoteRe.ReplaceAllString(s, "")
		if trimmed == s {
			break
		}
		s = trimmed
	}
	s = strings.TrimRight(s, ": ")
	return s
}

// ParseAmount parses numeric text tolerant of currency symbols,
// thousands separators, and parentheses denoting negative values.
// Currency symbols come off before the parentheses check: filings
// render negatives both as "($1,234)" and "$(1,234)".
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', '¥', ',', ' ', ' ':
			return -1
		}
		return r
	}, raw)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	d, err := idec.FromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// DetectScale infers the reporting unit from a table caption and from
// header rows that carry no amount (e.g. a "(in thousands)" banner
// above the numeric columns). Returns ScaleUnknown when no hint exists.
func DetectScale(caption string, rows []model.RawRow) model.Scale {
	if s := scaleFromText(caption); s != model.ScaleUnknown {
		return s
	}
	for _, row := range rows {
		if strings.TrimSpace(row.RawValue) != "" && !dashValues[strings.TrimSpace(row.RawValue)] {
			continue
		}
		if s := scaleFromText(row.Label); s != model.ScaleUnknown {
			return s
		}
	}
	return model.ScaleUnknown
}

func scaleFromText(text string) model.Scale {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "million"):
		return model.ScaleMillions
	case strings.Contains(t, "thousand"):
		return model.ScaleThousands
	case strings.Contains(t, "billion"):
		return model.ScaleBillions
	}
	return model.ScaleUnknown
}
