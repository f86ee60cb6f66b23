package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// StockQueryUseCase consultas de solo lectura sobre los buckets con existencias.
type StockQueryUseCase struct {
	stock repository.StockRepository
	log   *logger.Logger
}

// NewStockQueryUseCase construye el caso de uso con el repositorio fuera de transacción.
func NewStockQueryUseCase(stock repository.StockRepository, log *logger.Logger) *StockQueryUseCase {
	return &StockQueryUseCase{stock: stock, log: log.Named("stock_query")}
}

// List devuelve los buckets con disponible > 0 cuyo SKU, nombre o ubicación contienen search.
func (uc *StockQueryUseCase) List(ctx context.Context, search string) ([]dto.StockLineDTO, error) {
	lines, err := uc.stock.ListLines(ctx, repository.StockFilter{Search: strings.TrimSpace(search), OnlyAvailable: true})
	if err != nil {
		uc.log.Error().Err(err).Msg("listar stock")
		return nil, fmt.Errorf("listar stock: %w", err)
	}
	out := make([]dto.StockLineDTO, 0, len(lines))
	for _, l := range lines {
		row := dto.StockLineDTO{
			ItemID:        l.ItemID,
			ItemSKU:       l.ItemSKU,
			ItemName:      l.ItemName,
			UnitOfMeasure: l.UnitOfMeasure,
			LocationCode:  l.LocationCode,
			LocationName:  l.LocationName,
			LotNumber:     l.LotNumber,
			LotExpiry:     l.LotExpiry,
			SerialNumber:  l.SerialNumber,
			Available:     l.QuantityAvailable.Decimal(),
			Reserved:      l.QuantityReserved.Decimal(),
			TotalValue:    inventory.LineValue(l),
			UpdatedAt:     l.UpdatedAt,
		}
		if l.Price != nil {
			row.UnitPrice = *l.Price
		}
		out = append(out, row)
	}
	return out, nil
}

// Summary totales por artículo y valor total del inventario.
func (uc *StockQueryUseCase) Summary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	lines, err := uc.stock.ListLines(ctx, repository.StockFilter{OnlyAvailable: true})
	if err != nil {
		uc.log.Error().Err(err).Msg("resumen de stock")
		return nil, fmt.Errorf("resumen de stock: %w", err)
	}
	totals, grand := inventory.Summarize(lines)
	resp := &dto.StockSummaryResponse{Items: make([]dto.ItemStockSummaryDTO, 0, len(totals)), TotalValue: grand}
	for _, t := range totals {
		resp.Items = append(resp.Items, dto.ItemStockSummaryDTO{
			ItemID:        t.ItemID,
			ItemSKU:       t.ItemSKU,
			ItemName:      t.ItemName,
			UnitOfMeasure: t.UnitOfMeasure,
			TotalQuantity: t.Quantity,
			TotalValue:    t.Value,
			Locations:     t.Locations,
		})
	}
	return resp, nil
}
