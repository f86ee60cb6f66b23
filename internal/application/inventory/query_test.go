package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/infrastructure/seed"
)

func TestStockQuery_ListYSummary(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.receiveWidget(t, "RECEIVING", 10)
	e.receiveWidget(t, "A001", 4)
	_, err := e.receive.Execute(ctx, dto.ReceiveItemRequest{ItemSKU: seed.LotTrackedItemSKU, LocationCode: "A001", Quantity: qty(3), LotNumber: "L1"}, "u1")
	require.NoError(t, err)
	_, err = e.pick.Execute(ctx, dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "A001", Quantity: qty(4)}, "u1")
	require.NoError(t, err)

	lines, err := e.stock.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, lines, 2, "el bucket vacío de A001 no se lista")
	assert.Equal(t, seed.LotTrackedItemSKU, lines[0].ItemSKU)
	assert.Equal(t, "L1", lines[0].LotNumber)
	assert.Equal(t, seed.DemoItemSKU, lines[1].ItemSKU)
	assert.Equal(t, "125", lines[1].TotalValue.String(), "10 × 12.50")

	lines, err = e.stock.List(ctx, "reactivo")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	sum, err := e.stock.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum.Items, 2)
	assert.Equal(t, "125", sum.TotalValue.String())
}

func TestLotQuery_BusquedaYPorArticulo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	past := baseTime.Add(-24 * time.Hour)
	for _, n := range []string{"LOTE-B", "LOTE-A"} {
		_, err := e.receive.Execute(ctx, dto.ReceiveItemRequest{ItemSKU: seed.LotTrackedItemSKU, LocationCode: "RECEIVING", Quantity: qty(1), LotNumber: n}, "u1")
		require.NoError(t, err)
	}
	_, err := e.receive.Execute(ctx, dto.ReceiveItemRequest{ItemSKU: seed.LotTrackedItemSKU, LocationCode: "RECEIVING", Quantity: qty(1), LotNumber: "VIEJO", ExpiryDate: &past}, "u1")
	require.NoError(t, err)
	itemID := e.item(t, seed.LotTrackedItemSKU).ID

	lots, err := e.lots.ByItem(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, lots, 3)
	assert.Equal(t, "LOTE-A", lots[0].Number, "ordenados por número")

	lots, err = e.lots.Search(ctx, "lote", itemID)
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	lots, err = e.lots.Search(ctx, "L", itemID)
	require.NoError(t, err)
	assert.Empty(t, lots, "término de un carácter")

	lots, err = e.lots.Search(ctx, "", itemID)
	require.NoError(t, err)
	assert.Len(t, lots, 3)

	lots, err = e.lots.Search(ctx, "viejo", "")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.True(t, lots[0].IsExpired)

	lots, err = e.lots.ByItem(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, lots)
}
