// Package extraction replays a revenue table produced by an upstream
// extractor (typically delivered as a CDATA-wrapped or fenced JSON
// blob, and often slightly malformed) back through the deterministic
// pipeline, so its arithmetic is re-checked rather than trusted.
package extraction

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	idec "github.com/rezonia/revenue-extractor/internal/decimal"
	"github.com/rezonia/revenue-extractor/internal/model"
)

const (
	cdataStart = "<![CDATA["
	cdataEnd   = "]]>"
)

type wireItem struct {
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
	IsSubtotal bool    `json:"is_subtotal"`
}

type wireTable struct {
	TableTitle        string     `json:"table_title"`
	RevenueItems      []wireItem `json:"revenue_items"`
	TableTotalRevenue *float64   `json:"table_total_revenue"`
}

// Parse extracts the JSON payload from an upstream answer and converts
// it into pipeline input. Upstream amounts are already in millions, so
// the input carries an explicit scale. A "no table" answer yields
// (nil, nil).
func Parse(content string) (*model.Input, error) {
	if strings.Contains(strings.ToLower(content), "no table") {
		return nil, nil
	}

	payload, err := extractPayload(content)
	if err != nil {
		return nil, err
	}

	repaired, err := jsonrepair.RepairJSON(payload)
	if err != nil {
		return nil, model.NewIngestError("extraction", "payload is not repairable JSON", err)
	}

	var table wireTable
	if err := json.Unmarshal([]byte(repaired), &table); err != nil {
		return nil, model.NewIngestError("extraction", "payload does not match the revenue-table shape", err)
	}

	in := &model.Input{
		Caption: table.TableTitle,
		Scale:   model.ScaleMillions,
	}
	for _, it := range table.RevenueItems {
		row := model.RawRow{
			Label:    it.Title,
			RawValue: formatAmount(it.Amount),
		}
		if it.IsSubtotal {
			row.Styles = model.StyleSet{model.StyleBold}
		}
		in.Rows = append(in.Rows, row)
	}
	if table.TableTotalRevenue != nil {
		in.Rows = append(in.Rows, model.RawRow{
			Label:    "Total revenue",
			RawValue: formatAmount(*table.TableTotalRevenue),
			Styles:   model.StyleSet{model.StyleBold},
		})
	}
	return in, nil
}

// extractPayload finds the JSON body: a CDATA section wins, then a
// fenced code block, then the outermost braces.
func extractPayload(content string) (string, error) {
	if start := strings.Index(content, cdataStart); start != -1 {
		rest := content[start+len(cdataStart):]
		if end := strings.Index(rest, cdataEnd); end != -1 {
			return strings.TrimSpace(rest[:end]), nil
		}
		return "", model.NewIngestError("extraction", "unterminated CDATA section", nil)
	}

	if start := strings.Index(content, "```"); start != -1 {
		rest := content[start+3:]
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end]), nil
		}
	}

	first := strings.IndexByte(content, '{')
	last := strings.LastIndexByte(content, '}')
	if first == -1 || last <= first {
		return "", model.NewIngestError("extraction", "no JSON object in response", nil)
	}
	return content[first : last+1], nil
}

func formatAmount(v float64) string {
	return idec.FromFloat(v).String()
}
