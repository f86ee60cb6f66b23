package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

// ─── helpers ─────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)

func newService() *inventory.StockMovementService {
	n := 0
	return inventory.NewStockMovementService(
		inventory.WithClock(func() time.Time { return fixedNow }),
		inventory.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

type fixture struct {
	store *memory.Store
	tx    *memory.TxRunner
	svc   *inventory.StockMovementService
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{store: store, tx: memory.NewTxRunner(store), svc: newService()}
}

// run ejecuta fn en una transacción y entrega el Ledger.
func (f *fixture) run(t *testing.T, fn func(l inventory.Ledger) error) error {
	t.Helper()
	return f.tx.Run(context.Background(), func(r repository.Repos) error {
		return fn(inventory.Ledger{Stock: r.Stock, Movements: r.Movements})
	})
}

func (f *fixture) available(t *testing.T, key entity.StockKey) string {
	t.Helper()
	s, err := f.store.Repos().Stock.Get(context.Background(), key)
	require.NoError(t, err)
	if s == nil {
		return "<nil>"
	}
	return s.QuantityAvailable.String()
}

func (f *fixture) movementCount(t *testing.T) int {
	t.Helper()
	lines, err := f.store.Repos().Movements.ListLines(context.Background(), repository.MovementFilter{
		From: fixedNow.Add(-time.Hour), To: fixedNow.Add(time.Hour),
	})
	require.NoError(t, err)
	return len(lines)
}

func (f *fixture) receive(t *testing.T, item, loc string, qty int64) {
	t.Helper()
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Receive(context.Background(), l, inventory.ReceiveInput{
			ItemID: item, LocationID: loc, Quantity: valueobject.MustQuantity(qty), UserID: "u1",
		})
		return err
	}))
}

var (
	recvKey = entity.StockKey{ItemID: "item", LocationID: "RECV"}
	a001Key = entity.StockKey{ItemID: "item", LocationID: "A001"}
)

// ─── Receive ─────────────────────────────────────────────────────────────────

func TestReceive_CreaBucketYMovimiento(t *testing.T) {
	f := newFixture()
	var mov *entity.Movement
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		var err error
		mov, err = f.svc.Receive(context.Background(), l, inventory.ReceiveInput{
			ItemID: "item", LocationID: "RECV", Quantity: valueobject.MustQuantity(100),
			UserID: "u1", ReferenceNumber: "PO-9", Notes: "primera",
		})
		return err
	}))

	assert.Equal(t, "100", f.available(t, recvKey))
	assert.Equal(t, entity.MovementTypeReceipt, mov.Type)
	assert.Equal(t, "RECV", mov.ToLocationID)
	assert.Empty(t, mov.FromLocationID)
	assert.Equal(t, "PO-9", mov.ReferenceNumber)
	assert.Equal(t, fixedNow, mov.Timestamp)
	assert.Equal(t, "id-2", mov.ID, "id-1 es el bucket, id-2 el movimiento")
	assert.Equal(t, 1, f.movementCount(t))
}

func TestReceive_AcumulaEnElMismoBucket(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "RECV", 10)
	f.receive(t, "item", "RECV", 5)

	s, err := f.store.Repos().Stock.Get(context.Background(), recvKey)
	require.NoError(t, err)
	assert.Equal(t, "15", s.QuantityAvailable.String())
	assert.Equal(t, int64(2), s.Version)
	assert.Equal(t, 2, f.movementCount(t))
}

func TestReceive_LoteYSerieSonBucketsDistintos(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "RECV", 10)
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Receive(context.Background(), l, inventory.ReceiveInput{
			ItemID: "item", LocationID: "RECV", Quantity: valueobject.MustQuantity(3), UserID: "u1",
			LotID: "lot-1", SerialNumber: "SN-1",
		})
		return err
	}))

	assert.Equal(t, "10", f.available(t, recvKey))
	assert.Equal(t, "3", f.available(t, entity.StockKey{ItemID: "item", LocationID: "RECV", LotID: "lot-1", SerialNumber: "SN-1"}))
}

func TestReceive_CantidadCeroRechazada(t *testing.T) {
	f := newFixture()
	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Receive(context.Background(), l, inventory.ReceiveInput{
			ItemID: "item", LocationID: "RECV", Quantity: valueobject.ZeroQuantity(), UserID: "u1",
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.movementCount(t))
}

// ─── Putaway ─────────────────────────────────────────────────────────────────

func TestPutaway_MueveConservandoIdentidad(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "RECV", 100)

	var mov *entity.Movement
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		var err error
		mov, err = f.svc.Putaway(context.Background(), l, inventory.PutawayInput{
			ItemID: "item", FromLocationID: "RECV", ToLocationID: "A001",
			Quantity: valueobject.MustQuantity(40), UserID: "u1",
		})
		return err
	}))

	assert.Equal(t, "60", f.available(t, recvKey))
	assert.Equal(t, "40", f.available(t, a001Key))
	assert.Equal(t, entity.MovementTypePutaway, mov.Type)
	assert.Equal(t, "RECV", mov.FromLocationID)
	assert.Equal(t, "A001", mov.ToLocationID)
	assert.Equal(t, 2, f.movementCount(t))
}

func TestPutaway_OrigenInsuficienteEsInvarianteYNoCambiaNada(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "RECV", 10)

	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Putaway(context.Background(), l, inventory.PutawayInput{
			ItemID: "item", FromLocationID: "RECV", ToLocationID: "A001",
			Quantity: valueobject.MustQuantity(11), UserID: "u1",
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, "10", f.available(t, recvKey))
	assert.Equal(t, "<nil>", f.available(t, a001Key), "el bucket destino no debe quedar creado")
	assert.Equal(t, 1, f.movementCount(t))
}

func TestPutaway_OrigenInexistente(t *testing.T) {
	f := newFixture()
	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Putaway(context.Background(), l, inventory.PutawayInput{
			ItemID: "item", FromLocationID: "RECV", ToLocationID: "A001",
			Quantity: valueobject.MustQuantity(1), UserID: "u1",
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestPutaway_MismaUbicacionRechazada(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "RECV", 10)
	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Putaway(context.Background(), l, inventory.PutawayInput{
			ItemID: "item", FromLocationID: "RECV", ToLocationID: "RECV",
			Quantity: valueobject.MustQuantity(1), UserID: "u1",
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Pick ────────────────────────────────────────────────────────────────────

func TestPick_DescuentaYGuardaOrden(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "A001", 40)

	var mov *entity.Movement
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		var err error
		mov, err = f.svc.Pick(context.Background(), l, inventory.PickInput{
			ItemID: "item", LocationID: "A001", Quantity: valueobject.MustQuantity(25), UserID: "u1", OrderNumber: "ORD-1",
		})
		return err
	}))
	assert.Equal(t, "15", f.available(t, a001Key))
	assert.Equal(t, entity.MovementTypePick, mov.Type)
	assert.Equal(t, "A001", mov.FromLocationID)
	assert.Empty(t, mov.ToLocationID)
	assert.Equal(t, "ORD-1", mov.ReferenceNumber)
}

func TestPick_HastaCeroDejaBucketEnCero(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "A001", 5)
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Pick(context.Background(), l, inventory.PickInput{
			ItemID: "item", LocationID: "A001", Quantity: valueobject.MustQuantity(5), UserID: "u1",
		})
		return err
	}))
	assert.Equal(t, "0", f.available(t, a001Key))
}

func TestPick_NegativoEsInvariante(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "A001", 5)
	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Pick(context.Background(), l, inventory.PickInput{
			ItemID: "item", LocationID: "A001", Quantity: valueobject.MustQuantity(6), UserID: "u1",
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, "5", f.available(t, a001Key))
}

// ─── Adjust ──────────────────────────────────────────────────────────────────

func TestAdjust_GuardaDeltaConSigno(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "A001", 15)

	var mov *entity.Movement
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		var err error
		mov, err = f.svc.Adjust(context.Background(), l, inventory.AdjustInput{
			ItemID: "item", LocationID: "A001", NewQuantity: valueobject.MustQuantity(12), UserID: "u1", Reason: "conteo cíclico",
		})
		return err
	}))
	assert.Equal(t, "12", f.available(t, a001Key))
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-3)))
	assert.Equal(t, "conteo cíclico", mov.Notes)
}

func TestAdjust_CreaBucketInexistente(t *testing.T) {
	f := newFixture()
	var mov *entity.Movement
	require.NoError(t, f.run(t, func(l inventory.Ledger) error {
		var err error
		mov, err = f.svc.Adjust(context.Background(), l, inventory.AdjustInput{
			ItemID: "item", LocationID: "A001", NewQuantity: valueobject.MustQuantity(7), UserID: "u1", Reason: "hallazgo",
		})
		return err
	}))
	assert.Equal(t, "7", f.available(t, a001Key))
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestAdjust_DeltaCeroRechazado(t *testing.T) {
	f := newFixture()
	f.receive(t, "item", "A001", 15)
	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Adjust(context.Background(), l, inventory.AdjustInput{
			ItemID: "item", LocationID: "A001", NewQuantity: valueobject.MustQuantity(15), UserID: "u1", Reason: "x",
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, f.movementCount(t))
}

func TestService_SinUsuarioRechazado(t *testing.T) {
	f := newFixture()
	err := f.run(t, func(l inventory.Ledger) error {
		_, err := f.svc.Receive(context.Background(), l, inventory.ReceiveInput{
			ItemID: "item", LocationID: "RECV", Quantity: valueobject.MustQuantity(1),
		})
		return err
	})
	re, ok := domain.AsRuleError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeValidation, re.Code)
}
