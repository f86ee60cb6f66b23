// Package seed carga el maestro mínimo de demostración: bodega MAIN, ubicaciones
// RECEIVING y A001 y el artículo WIDGET-001. Es idempotente: lo que ya existe se respeta.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Códigos de los datos de demostración.
const (
	WarehouseCode        = "MAIN"
	ReceivingLocation    = "RECEIVING"
	StorageLocation      = "A001"
	DemoItemSKU          = "WIDGET-001"
	DemoItemBarcode      = "7701234567890"
	LotTrackedItemSKU    = "MED-100"
	SerialTrackedItemSKU = "SCAN-200"
)

// Result cuenta lo creado en esta ejecución.
type Result struct {
	Warehouses int
	Locations  int
	Items      int
}

// Load crea en repos los registros de demostración que falten.
func Load(ctx context.Context, repos repository.Repos, now time.Time) (Result, error) {
	var res Result

	wh, err := repos.Warehouses.GetByCode(ctx, WarehouseCode)
	if err != nil {
		return res, fmt.Errorf("seed bodega: %w", err)
	}
	if wh == nil {
		wh = &entity.Warehouse{ID: uuid.NewString(), Code: WarehouseCode, Name: "Bodega principal", IsActive: true, CreatedAt: now, UpdatedAt: now}
		if err := repos.Warehouses.Create(ctx, wh); err != nil {
			return res, fmt.Errorf("seed bodega: %w", err)
		}
		res.Warehouses++
	}

	locations := []entity.Location{
		{Code: ReceivingLocation, Name: "Muelle de recepción", IsReceivable: true, IsPickable: false},
		{Code: StorageLocation, Name: "Pasillo A, estante 001", IsReceivable: true, IsPickable: true},
	}
	for _, l := range locations {
		existing, err := repos.Locations.GetByCode(ctx, l.Code)
		if err != nil {
			return res, fmt.Errorf("seed ubicación %s: %w", l.Code, err)
		}
		if existing != nil {
			continue
		}
		l.ID = uuid.NewString()
		l.WarehouseID = wh.ID
		l.IsActive = true
		l.Capacity = decimal.NewFromInt(1000)
		l.CreatedAt, l.UpdatedAt = now, now
		if err := repos.Locations.Create(ctx, &l); err != nil {
			return res, fmt.Errorf("seed ubicación %s: %w", l.Code, err)
		}
		res.Locations++
	}

	price := decimal.RequireFromString("12.50")
	items := []entity.Item{
		{SKU: DemoItemSKU, Name: "Widget estándar", UnitOfMeasure: "UND", Price: &price, Barcodes: []string{DemoItemBarcode}},
		{SKU: LotTrackedItemSKU, Name: "Reactivo con lote", UnitOfMeasure: "CAJA", RequiresLot: true, ShelfLifeDays: 365},
		{SKU: SerialTrackedItemSKU, Name: "Escáner serializado", UnitOfMeasure: "UND", RequiresSerial: true},
	}
	for _, it := range items {
		existing, err := repos.Items.GetBySKU(ctx, it.SKU)
		if err != nil {
			return res, fmt.Errorf("seed artículo %s: %w", it.SKU, err)
		}
		if existing != nil {
			continue
		}
		it.ID = uuid.NewString()
		it.IsActive = true
		it.CreatedAt, it.UpdatedAt = now, now
		if err := repos.Items.Create(ctx, &it); err != nil {
			return res, fmt.Errorf("seed artículo %s: %w", it.SKU, err)
		}
		res.Items++
	}
	return res, nil
}
