package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/seed"
)

func TestPick_DescuentaYRegistraPedido(t *testing.T) {
	e := newEnv(t)
	e.receiveWidget(t, "A001", 10)

	out, err := e.pick.Execute(context.Background(), dto.PickRequest{
		ItemSKU: seed.DemoItemBarcode, FromLocationCode: "A001", Quantity: qty(10), OrderNumber: " SO-77 ",
	}, "picker")
	require.NoError(t, err)
	assert.Equal(t, seed.DemoItemSKU, out.ItemSKU)
	assert.Equal(t, "SO-77", out.OrderNumber)
	assert.Equal(t, "0", e.bucket(t, seed.DemoItemSKU, "A001", "", ""))

	m := e.movements(t)[0]
	assert.Equal(t, entity.MovementTypePick, m.Type)
	assert.Equal(t, "SO-77", m.ReferenceNumber)
	assert.Nil(t, m.ToLocationCode)
	require.NotNil(t, m.FromLocationCode)
	assert.Equal(t, "A001", *m.FromLocationCode)
}

func TestPick_ConLoteLlevaElLoteDelBucket(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.receive.Execute(ctx, dto.ReceiveItemRequest{ItemSKU: seed.LotTrackedItemSKU, LocationCode: "A001", Quantity: qty(5), LotNumber: "L9"}, "u1")
	require.NoError(t, err)

	_, err = e.pick.Execute(ctx, dto.PickRequest{ItemSKU: seed.LotTrackedItemSKU, FromLocationCode: "A001", Quantity: qty(2)}, "u1")
	assertCode(t, err, domain.ErrMissingAttribute, domain.CodeLotRequired)

	_, err = e.pick.Execute(ctx, dto.PickRequest{ItemSKU: seed.LotTrackedItemSKU, FromLocationCode: "A001", Quantity: qty(2), LotNumber: "L404"}, "u1")
	assertCode(t, err, domain.ErrNotFound, domain.CodeLotNotFound)

	out, err := e.pick.Execute(ctx, dto.PickRequest{ItemSKU: seed.LotTrackedItemSKU, FromLocationCode: "A001", Quantity: qty(2), LotNumber: "L9"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "L9", out.LotNumber)

	lot := e.lot(t, seed.LotTrackedItemSKU, "L9")
	assert.Equal(t, "3", e.bucket(t, seed.LotTrackedItemSKU, "A001", lot.ID, ""))
	m := e.movements(t)[0]
	require.NotNil(t, m.LotNumber)
	assert.Equal(t, "L9", *m.LotNumber)
}

func TestPick_Rechazos(t *testing.T) {
	cases := []struct {
		name string
		req  dto.PickRequest
		kind error
		code string
	}{
		{"ubicación no despachable", dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "RECEIVING", Quantity: qty(1)}, domain.ErrCapabilityMismatch, domain.CodeLocationNotPickable},
		{"ubicación inactiva", dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "Z999", Quantity: qty(1)}, domain.ErrInactive, domain.CodeLocationInactive},
		{"artículo inactivo", dto.PickRequest{ItemSKU: "OLD-1", FromLocationCode: "A001", Quantity: qty(1)}, domain.ErrInactive, domain.CodeItemInactive},
		{"sin bucket", dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "PICK-ONLY", Quantity: qty(1)}, domain.ErrNotFound, domain.CodeStockNotFound},
		{"insuficiente", dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "A001", Quantity: qty(6)}, domain.ErrInsufficientStock, domain.CodeInsufficientStock},
		{"cantidad negativa", dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "A001", Quantity: qty(-1)}, domain.ErrInvalidInput, domain.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			e.receiveWidget(t, "A001", 5)

			_, err := e.pick.Execute(context.Background(), tc.req, "u1")
			assertCode(t, err, tc.kind, tc.code)
			assert.Equal(t, "5", e.bucket(t, seed.DemoItemSKU, "A001", "", ""))
			assert.Len(t, e.movements(t), 1)
		})
	}
}

func TestPick_ConcurrenteNoSobregira(t *testing.T) {
	e := newEnv(t)
	e.receiveWidget(t, "A001", 10)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		refused int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.pick.Execute(context.Background(), dto.PickRequest{ItemSKU: seed.DemoItemSKU, FromLocationCode: "A001", Quantity: qty(10)}, "u1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
				refused++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, refused)
	assert.Equal(t, "0", e.bucket(t, seed.DemoItemSKU, "A001", "", ""))
	assert.Len(t, e.movements(t), 2, "recepción + un solo despacho")
}
