package model

// StyleHint is a layout hint attached to a raw table row by the
// ingestion collaborator. Plain-text sources that carry no formatting
// simply leave the set empty; classification then degrades to
// keyword-only matching.
type StyleHint string

const (
	StyleBold     StyleHint = "bold"
	StyleItalic   StyleHint = "italic"
	StyleShaded   StyleHint = "shaded"
	StyleIndented StyleHint = "indented"
)

// StyleSet is the set of style hints on one row.
type StyleSet []StyleHint

// Has reports whether the set contains the given hint.
func (s StyleSet) Has(h StyleHint) bool {
	for _, v := range s {
		if v == h {
			return true
		}
	}
	return false
}

// RawRow is one physical table row as delivered by the ingestion
// collaborator, in original document order. Order is load-bearing:
// totals conventionally follow their constituents.
type RawRow struct {
	Label       string
	RawValue    string
	IndentLevel int
	Styles      StyleSet
}

// Scale is the unit the source table reports amounts in. Amounts are
// normalized to millions before classification.
type Scale int

const (
	ScaleUnknown Scale = iota
	ScaleOnes
	ScaleThousands
	ScaleMillions
	ScaleBillions
)

func (s Scale) String() string {
	switch s {
	case ScaleOnes:
		return "ones"
	case ScaleThousands:
		return "thousands"
	case ScaleMillions:
		return "millions"
	case ScaleBillions:
		return "billions"
	default:
		return "unknown"
	}
}

// Input is one table-extraction request: the ordered row sequence plus
// whatever caption text the source carried. Scale may be set by callers
// that already know the unit (e.g. replayed extractions); when left
// ScaleUnknown it is inferred from the caption and header rows.
type Input struct {
	Caption string
	Rows    []RawRow
	Scale   Scale
}
