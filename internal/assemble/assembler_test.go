package assemble_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/revenue-extractor/internal/assemble"
	"github.com/rezonia/revenue-extractor/internal/classify"
	"github.com/rezonia/revenue-extractor/internal/model"
)

func item(title string) model.LineItem {
	return model.LineItem{Title: title, Amount: decimal.NewFromInt(100), Group: model.GroupRoot}
}

func TestAssemble_CaptionWins(t *testing.T) {
	cls := classify.Classification{
		Items: []model.LineItem{item("United States"), item("Japan")},
		Total: &model.LineItem{Title: "Total", Amount: decimal.NewFromInt(200), IsTotal: true},
	}

	table := assemble.Assemble("Revenue by segment (in millions)", cls)
	assert.Equal(t, "Revenue by segment", table.Title)
	require.NotNil(t, table.TotalRevenue)
	assert.True(t, table.TotalRevenue.Equal(decimal.NewFromInt(200)))
}

func TestAssemble_NoTotal(t *testing.T) {
	cls := classify.Classification{Items: []model.LineItem{item("Hardware")}}

	table := assemble.Assemble("", cls)
	assert.Nil(t, table.TotalRevenue)
	assert.Len(t, table.Items, 1)
}

func TestTitle_UnitOnlyCaptionFallsThrough(t *testing.T) {
	items := []model.LineItem{item("United States"), item("Other countries")}
	assert.Equal(t, assemble.TitleByGeography, assemble.Title("(In thousands)", items))
}

func TestInferTitle(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected string
	}{
		{
			name:     "all countries",
			labels:   []string{"United States", "Germany", "Japan", "Rest of world"},
			expected: assemble.TitleByGeography,
		},
		{
			name:     "all products",
			labels:   []string{"Server products", "Gaming", "Devices"},
			expected: assemble.TitleByProduct,
		},
		{
			name:     "mixed axes",
			labels:   []string{"Hardware", "Software", "United States", "International"},
			expected: assemble.TitleMixed,
		},
		{
			name:     "neutral labels do not flip the axis",
			labels:   []string{"United States", "China", "Other"},
			expected: assemble.TitleByGeography,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]model.LineItem, len(tt.labels))
			for i, l := range tt.labels {
				items[i] = item(l)
			}
			assert.Equal(t, tt.expected, assemble.Title("", items))
		})
	}
}

func TestInferTitle_SubtotalsIgnored(t *testing.T) {
	items := []model.LineItem{
		item("United States"),
		item("Canada"),
		{Title: "Total products", Amount: decimal.NewFromInt(200), IsSubtotal: true, Group: model.GroupRoot},
	}
	// The subtotal label mentions products but only leaves drive the
	// inference.
	assert.Equal(t, assemble.TitleByGeography, assemble.Title("", items))
}
