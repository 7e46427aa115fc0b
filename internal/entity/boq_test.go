package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() BoqItem {
	return BoqItem{
		Category:        "Display",
		ItemDescription: "85\" 4K Commercial Display",
		Brand:           "Samsung",
		Model:           "QM85C",
		Quantity:        2,
		UnitPrice:       100,
		TotalPrice:      999,
		Source:          ItemSourceDatabase,
		PriceSource:     PriceSourceDatabase,
	}
}

func TestBoqItem_NormalizeRecomputesTotal(t *testing.T) {
	item := validItem()
	item.Normalize()
	assert.Equal(t, 200.0, item.TotalPrice)
}

func TestBoqItem_NormalizeClampsNegativeMargin(t *testing.T) {
	margin := -0.15
	item := validItem()
	item.Margin = &margin

	item.Normalize()

	require.NotNil(t, item.Margin)
	assert.Equal(t, 0.0, *item.Margin)
}

func TestBoqItem_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BoqItem)
		field  string
	}{
		{"empty category", func(i *BoqItem) { i.Category = "" }, "category"},
		{"empty description", func(i *BoqItem) { i.ItemDescription = "" }, "itemDescription"},
		{"negative quantity", func(i *BoqItem) { i.Quantity = -1 }, "quantity"},
		{"negative unit price", func(i *BoqItem) { i.UnitPrice = -5 }, "unitPrice"},
		{"unknown source", func(i *BoqItem) { i.Source = "guesswork" }, "source"},
		{"unknown price source", func(i *BoqItem) { i.PriceSource = "rumor" }, "priceSource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)

			err := item.Validate()
			require.Error(t, err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}

	item := validItem()
	assert.NoError(t, item.Validate())
}

func TestBoq_Total(t *testing.T) {
	boq := Boq{
		{Quantity: 2, UnitPrice: 100, Source: ItemSourceDatabase, PriceSource: PriceSourceDatabase},
		{Quantity: 1, UnitPrice: 50, Source: ItemSourceWeb, PriceSource: PriceSourceEstimated},
	}
	boq.Normalize()

	assert.Equal(t, 200.0, boq[0].TotalPrice)
	assert.Equal(t, 50.0, boq[1].TotalPrice)
	assert.Equal(t, 250.0, boq.Total())
}
