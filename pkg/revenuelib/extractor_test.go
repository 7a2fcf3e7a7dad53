package revenuelib_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/revenue-extractor/pkg/revenuelib"
)

func segmentRows() []revenuelib.RawRow {
	return []revenuelib.RawRow{
		{Label: "iPhone", RawValue: "200,583", IndentLevel: 0},
		{Label: "Mac", RawValue: "29,357", IndentLevel: 0},
		{Label: "iPad", RawValue: "26,694", IndentLevel: 0},
		{Label: "Services", RawValue: "85,200", IndentLevel: 0},
		{Label: "Total net sales", RawValue: "341,834", IndentLevel: 0, Styles: revenuelib.StyleSet{revenuelib.StyleBold}},
	}
}

func TestNewExtractor(t *testing.T) {
	opts := revenuelib.DefaultExtractorOptions()
	opts.ValueColumn = 1

	ex := revenuelib.NewExtractor(opts)
	require.NotNil(t, ex)
}

func TestNewDefaultExtractor(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()
	require.NotNil(t, ex)
}

func TestDefaultExtractorOptions(t *testing.T) {
	opts := revenuelib.DefaultExtractorOptions()

	assert.True(t, opts.AbsTolerance.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, opts.RelTolerance.Equal(decimal.RequireFromString("0.001")))
	assert.Equal(t, 0, opts.ValueColumn)
}

func TestExtractorExtract(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	result := ex.Extract(context.Background(), revenuelib.Input{
		Caption: "Net sales by category (in millions)",
		Rows:    segmentRows(),
	})
	require.NotNil(t, result)
	require.False(t, result.Rejected)
	require.NotNil(t, result.Table)

	assert.Len(t, result.Table.Items, 4)
	require.NotNil(t, result.Table.TotalRevenue)
	assert.True(t, result.Table.TotalRevenue.Equal(decimal.RequireFromString("341834")))
	assert.Equal(t, revenuelib.ReconOK, result.Report.Status)
}

func TestExtractorExtract_RejectedMarshalsNull(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	result := ex.Extract(context.Background(), revenuelib.Input{
		Caption: "Balance sheet data",
		Rows: []revenuelib.RawRow{
			{Label: "Total assets", RawValue: "52,148"},
			{Label: "Total liabilities", RawValue: "31,920"},
		},
	})
	require.NotNil(t, result)
	assert.True(t, result.Rejected)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestExtractorExtractHTML(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	tableHTML := `<table>
		<tr><td>Subscription revenue</td><td>$</td><td>1,200.5</td></tr>
		<tr><td>Professional services</td><td>$</td><td>300.1</td></tr>
		<tr><td style="font-weight:bold">Total revenue</td><td>$</td><td style="font-weight:bold">1,500.6</td></tr>
	</table>`

	result, err := ex.ExtractHTML(context.Background(), tableHTML)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.Rejected)

	assert.Len(t, result.Table.Items, 2)
	require.NotNil(t, result.Table.TotalRevenue)
	assert.True(t, result.Table.TotalRevenue.Equal(decimal.RequireFromString("1500.6")))
}

func TestExtractorExtractHTML_NoTable(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	result, err := ex.ExtractHTML(context.Background(), `<div>no tabular data here</div>`)
	require.Error(t, err)
	assert.Nil(t, result)

	var ingestErr *revenuelib.IngestError
	assert.ErrorAs(t, err, &ingestErr)
}

func TestExtractorExtractUpstream(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	content := `<![CDATA[{
		"table_title": "Revenue by Product and Service",
		"revenue_items": [
			{"title": "Devices", "amount": 120.5, "is_subtotal": false},
			{"title": "Accessories", "amount": 30.5, "is_subtotal": false}
		],
		"table_total_revenue": 151.0
	}]]>`

	result, err := ex.ExtractUpstream(context.Background(), content)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.Rejected)

	assert.Len(t, result.Table.Items, 2)
	require.NotNil(t, result.Table.TotalRevenue)
	assert.True(t, result.Table.TotalRevenue.Equal(decimal.RequireFromString("151")))
}

func TestExtractorExtractUpstream_NoTableSentinel(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	result, err := ex.ExtractUpstream(context.Background(), "no table")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExtractorExtractBatch(t *testing.T) {
	ex := revenuelib.NewDefaultExtractor()

	inputs := []revenuelib.Input{
		{Caption: "Revenue by segment (in millions)", Rows: segmentRows()},
		{Caption: "Balance sheet data", Rows: []revenuelib.RawRow{
			{Label: "Total assets", RawValue: "52,148"},
		}},
		{Caption: "Revenue by segment (in millions)", Rows: segmentRows()},
	}

	results := ex.ExtractBatch(context.Background(), inputs)
	require.Len(t, results, 3)

	require.NotNil(t, results[0])
	assert.False(t, results[0].Rejected)
	require.NotNil(t, results[1])
	assert.True(t, results[1].Rejected)
	require.NotNil(t, results[2])
	assert.False(t, results[2].Rejected)

	assert.Len(t, results[0].Table.Items, 4)
}

func TestExtractorCustomTolerances(t *testing.T) {
	opts := revenuelib.DefaultExtractorOptions()
	opts.AbsTolerance = decimal.RequireFromString("10")

	ex := revenuelib.NewExtractor(opts)

	rows := []revenuelib.RawRow{
		{Label: "Product revenue", RawValue: "100"},
		{Label: "Service revenue", RawValue: "50"},
		{Label: "Total revenue", RawValue: "155", Styles: revenuelib.StyleSet{revenuelib.StyleBold}},
	}

	result := ex.Extract(context.Background(), revenuelib.Input{
		Caption: "Revenue (in millions)",
		Rows:    rows,
	})
	require.False(t, result.Rejected)
	assert.Equal(t, revenuelib.ReconWithinTolerance, result.Report.Status)
}
