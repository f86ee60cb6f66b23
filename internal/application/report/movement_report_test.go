package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/report"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/internal/infrastructure/seed"
	"github.com/jhoicas/wms-api/pkg/logger"
)

var now = time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

// newReport carga el libro con el escenario WIDGET-001 (recepción, almacenamiento, despacho),
// un movimiento viejo fuera del rango por defecto y uno cuyo artículo ya no existe.
func newReport(t *testing.T) *report.MovementReportUseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	_, err := seed.Load(ctx, repos, now)
	require.NoError(t, err)

	item, err := repos.Items.GetBySKU(ctx, seed.DemoItemSKU)
	require.NoError(t, err)
	recv, err := repos.Locations.GetByCode(ctx, seed.ReceivingLocation)
	require.NoError(t, err)
	a001, err := repos.Locations.GetByCode(ctx, seed.StorageLocation)
	require.NoError(t, err)

	movs := []entity.Movement{
		{ID: "m1", Type: entity.MovementTypeReceipt, ItemID: item.ID, ToLocationID: recv.ID, Quantity: decimal.NewFromInt(100), UserID: "ana", Timestamp: now.Add(-3 * time.Hour)},
		{ID: "m2", Type: entity.MovementTypePutaway, ItemID: item.ID, FromLocationID: recv.ID, ToLocationID: a001.ID, Quantity: decimal.NewFromInt(40), UserID: "ana", Timestamp: now.Add(-2 * time.Hour)},
		{ID: "m3", Type: entity.MovementTypePick, ItemID: item.ID, FromLocationID: a001.ID, Quantity: decimal.NewFromInt(25), UserID: "luis", ReferenceNumber: "ORD-1", Timestamp: now.Add(-time.Hour)},
		{ID: "m-old", Type: entity.MovementTypeReceipt, ItemID: item.ID, ToLocationID: recv.ID, Quantity: decimal.NewFromInt(1), UserID: "ana", Timestamp: now.AddDate(0, 0, -45)},
		{ID: "m-orphan", Type: entity.MovementTypeAdjustment, ItemID: "borrado", ToLocationID: "borrada", Quantity: decimal.NewFromInt(-2), UserID: "ana", Timestamp: now.Add(-4 * time.Hour)},
	}
	for i := range movs {
		require.NoError(t, repos.Movements.Create(ctx, &movs[i]))
	}
	return report.NewMovementReportUseCase(repos.Movements, logger.Nop(), report.WithClock(func() time.Time { return now }))
}

func TestRange_PorDefecto30DiasHastaManana(t *testing.T) {
	uc := newReport(t)
	from, to := uc.Range(dto.MovementReportRequest{})
	assert.Equal(t, time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), to)
}

func TestExecute_FiltroPorArticuloMasRecientePrimero(t *testing.T) {
	rows, err := newReport(t).Execute(context.Background(), dto.MovementReportRequest{ItemSKU: "widget"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "m3", rows[0].ID)
	assert.Equal(t, "m2", rows[1].ID)
	assert.Equal(t, "m1", rows[2].ID)
	assert.Equal(t, "Widget estándar", rows[0].ItemName)
}

func TestExecute_FiltroPorTipo(t *testing.T) {
	rows, err := newReport(t).Execute(context.Background(), dto.MovementReportRequest{MovementType: "pick"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-1", rows[0].ReferenceNumber)
	require.NotNil(t, rows[0].FromLocationCode)
	assert.Equal(t, seed.StorageLocation, *rows[0].FromLocationCode)
	assert.Nil(t, rows[0].ToLocationCode)
}

func TestExecute_FiltroPorUbicacionOrigenODestino(t *testing.T) {
	rows, err := newReport(t).Execute(context.Background(), dto.MovementReportRequest{LocationCode: "a00"})
	require.NoError(t, err)
	require.Len(t, rows, 2, "putaway (destino) y pick (origen)")
	assert.Equal(t, "m3", rows[0].ID)
	assert.Equal(t, "m2", rows[1].ID)
}

func TestExecute_FiltroPorUsuario(t *testing.T) {
	rows, err := newReport(t).Execute(context.Background(), dto.MovementReportRequest{UserID: "LUI"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "luis", rows[0].UserID)
}

func TestExecute_ReferenciasPerdidasUsanTextoDeReemplazo(t *testing.T) {
	rows, err := newReport(t).Execute(context.Background(), dto.MovementReportRequest{MovementType: "Adjustment"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, report.UnknownItemSKU, rows[0].ItemSKU)
	assert.Equal(t, report.UnknownItemName, rows[0].ItemName)
	assert.Nil(t, rows[0].ToLocationCode)
	assert.Nil(t, rows[0].LotNumber)
	assert.Equal(t, "-2", rows[0].Quantity.String())
}

func TestExecute_RangoExplicitoIncluyeMovimientoViejo(t *testing.T) {
	from := now.AddDate(0, 0, -60)
	to := now.AddDate(0, 0, -40)
	rows, err := newReport(t).Execute(context.Background(), dto.MovementReportRequest{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "m-old", rows[0].ID)
}

func TestExecute_Rechazos(t *testing.T) {
	uc := newReport(t)
	from, to := now, now.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), dto.MovementReportRequest{FromDate: &from, ToDate: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), dto.MovementReportRequest{MovementType: "Transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
