package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
)

func line(itemID, sku, loc string, qty int64, price *decimal.Decimal) *entity.StockLine {
	return &entity.StockLine{
		Stock:   entity.Stock{ItemID: itemID, LocationID: loc, QuantityAvailable: valueobject.MustQuantity(qty)},
		ItemSKU: sku,
		Price:   price,
	}
}

func TestSummarize_AgrupaPorArticulo(t *testing.T) {
	p := decimal.RequireFromString("2.5")
	lines := []*entity.StockLine{
		line("b", "B-2", "L1", 4, nil),
		line("a", "A-1", "L1", 10, &p),
		line("a", "A-1", "L2", 2, &p),
		{Stock: entity.Stock{ItemID: "a", LocationID: "L2", LotID: "lot", QuantityAvailable: valueobject.MustQuantity(1)}, ItemSKU: "A-1", Price: &p},
	}

	totals, grand := inventory.Summarize(lines)
	require.Len(t, totals, 2)
	assert.Equal(t, "A-1", totals[0].ItemSKU)
	assert.True(t, totals[0].Quantity.Equal(decimal.NewFromInt(13)))
	assert.True(t, totals[0].Value.Equal(decimal.RequireFromString("32.5")))
	assert.Equal(t, 2, totals[0].Locations, "dos ubicaciones aunque haya tres buckets")
	assert.True(t, totals[1].Value.IsZero(), "sin precio vale cero")
	assert.True(t, grand.Equal(decimal.RequireFromString("32.5")))
}
