package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LineValue valor de una línea de stock: disponible * precio (precio nil cuenta como cero).
func LineValue(line *entity.StockLine) decimal.Decimal {
	if line.Price == nil {
		return decimal.Zero
	}
	return line.QuantityAvailable.Decimal().Mul(*line.Price)
}

// ItemTotals totales de un artículo sumando todos sus buckets.
type ItemTotals struct {
	ItemID        string
	ItemSKU       string
	ItemName      string
	UnitOfMeasure string
	Quantity      decimal.Decimal
	Value         decimal.Decimal
	Locations     int
}

// Summarize agrupa las líneas por artículo (ordenado por SKU) y devuelve el valor total.
// Locations cuenta ubicaciones distintas, no buckets.
func Summarize(lines []*entity.StockLine) ([]ItemTotals, decimal.Decimal) {
	byItem := make(map[string]*ItemTotals)
	seen := make(map[string]map[string]struct{})
	grand := decimal.Zero
	for _, l := range lines {
		t, ok := byItem[l.ItemID]
		if !ok {
			t = &ItemTotals{
				ItemID: l.ItemID, ItemSKU: l.ItemSKU, ItemName: l.ItemName, UnitOfMeasure: l.UnitOfMeasure,
				Quantity: decimal.Zero, Value: decimal.Zero,
			}
			byItem[l.ItemID] = t
			seen[l.ItemID] = make(map[string]struct{})
		}
		v := LineValue(l)
		t.Quantity = t.Quantity.Add(l.QuantityAvailable.Decimal())
		t.Value = t.Value.Add(v)
		if _, dup := seen[l.ItemID][l.LocationID]; !dup {
			seen[l.ItemID][l.LocationID] = struct{}{}
			t.Locations++
		}
		grand = grand.Add(v)
	}
	out := make([]ItemTotals, 0, len(byItem))
	for _, t := range byItem {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemSKU < out[j].ItemSKU })
	return out, grand
}
