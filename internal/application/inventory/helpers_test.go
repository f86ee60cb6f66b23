package inventory_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	domaininv "github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/internal/infrastructure/seed"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// ─── fixture ─────────────────────────────────────────────────────────────────

var baseTime = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

type env struct {
	store   *memory.Store
	receive *inventory.ReceiveUseCase
	putaway *inventory.PutawayUseCase
	pick    *inventory.PickUseCase
	adjust  *inventory.AdjustStockUseCase
	stock   *inventory.StockQueryUseCase
	lots    *inventory.LotQueryUseCase
}

// newEnv arma los casos de uso sobre el store en memoria con el maestro de demostración
// más una ubicación inactiva (Z999), una no recibible (PICK-ONLY) y un artículo inactivo (OLD-1).
// El reloj avanza un segundo por llamada para que el orden de los movimientos sea determinista.
func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	_, err := seed.Load(ctx, store.Repos(), baseTime)
	require.NoError(t, err)

	repos := store.Repos()
	require.NoError(t, repos.Locations.Create(ctx, &entity.Location{ID: "loc-z999", Code: "Z999", IsReceivable: true, IsPickable: true, IsActive: false}))
	require.NoError(t, repos.Locations.Create(ctx, &entity.Location{ID: "loc-pick", Code: "PICK-ONLY", IsReceivable: false, IsPickable: true, IsActive: true}))
	require.NoError(t, repos.Items.Create(ctx, &entity.Item{ID: "item-old", SKU: "OLD-1", Name: "Descontinuado", IsActive: false}))

	var tick int64
	svc := domaininv.NewStockMovementService(
		domaininv.WithClock(func() time.Time {
			return baseTime.Add(time.Duration(atomic.AddInt64(&tick, 1)) * time.Second)
		}),
	)
	tx := memory.NewTxRunner(store)
	log := logger.Nop()
	return &env{
		store:   store,
		receive: inventory.NewReceiveUseCase(tx, svc, log),
		putaway: inventory.NewPutawayUseCase(tx, svc, log),
		pick:    inventory.NewPickUseCase(tx, svc, log),
		adjust:  inventory.NewAdjustStockUseCase(tx, svc, log),
		stock:   inventory.NewStockQueryUseCase(repos.Stock, log),
		lots:    inventory.NewLotQueryUseCase(repos.Lots, log),
	}
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func qtyStr(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (e *env) item(t *testing.T, sku string) *entity.Item {
	t.Helper()
	it, err := e.store.Repos().Items.GetBySKU(context.Background(), sku)
	require.NoError(t, err)
	require.NotNil(t, it, "artículo %s", sku)
	return it
}

func (e *env) location(t *testing.T, code string) *entity.Location {
	t.Helper()
	l, err := e.store.Repos().Locations.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, l, "ubicación %s", code)
	return l
}

// bucket devuelve el disponible como texto, o "<nil>" si el bucket no existe.
func (e *env) bucket(t *testing.T, sku, loc, lotID, serial string) string {
	t.Helper()
	s, err := e.store.Repos().Stock.Get(context.Background(), entity.StockKey{
		ItemID: e.item(t, sku).ID, LocationID: e.location(t, loc).ID, LotID: lotID, SerialNumber: serial,
	})
	require.NoError(t, err)
	if s == nil {
		return "<nil>"
	}
	return s.QuantityAvailable.String()
}

func (e *env) movements(t *testing.T) []*entity.MovementLine {
	t.Helper()
	lines, err := e.store.Repos().Movements.ListLines(context.Background(), repository.MovementFilter{
		From: baseTime.Add(-time.Hour), To: baseTime.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return lines
}

func (e *env) lot(t *testing.T, sku, number string) *entity.Lot {
	t.Helper()
	l, err := e.store.Repos().Lots.GetByNumberAndItem(context.Background(), number, e.item(t, sku).ID)
	require.NoError(t, err)
	return l
}

