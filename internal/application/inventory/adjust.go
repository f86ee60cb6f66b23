package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// AdjustStockUseCase corrige el stock de un bucket a una cantidad absoluta (conteo físico).
type AdjustStockUseCase struct {
	tx      TxRunner
	service *inventory.StockMovementService
	log     *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(tx TxRunner, service *inventory.StockMovementService, log *logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{tx: tx, service: service, log: log.Named("adjustment")}
}

// Execute fija la cantidad. Se permite ajustar artículos inactivos (bajas); la ubicación debe estar activa.
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req dto.AdjustStockRequest, userID string) (*dto.AdjustmentResult, error) {
	ctx = context.WithoutCancel(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	newQty, err := valueobject.NewQuantity(req.NewQuantity)
	if err != nil {
		return nil, domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation,
			"La cantidad nueva no puede ser negativa (recibido: %s)", req.NewQuantity)
	}
	if err := checkScale(req.NewQuantity); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation, "El motivo del ajuste es obligatorio")
	}
	serial := valueobject.NormalizeSerial(req.SerialNumber)

	var (
		item *entity.Item
		loc  *entity.Location
		mov  *entity.Movement
	)
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		if item, err = resolveItem(ctx, repos.Items, req.ItemSKU); err != nil {
			return err
		}
		if loc, err = resolveLocation(ctx, repos.Locations, req.LocationCode, ""); err != nil {
			return err
		}
		if err = requireActiveLocation(loc); err != nil {
			return err
		}
		lot, err := resolveOutboundLot(ctx, repos.Lots, item, req.LotNumber)
		if err != nil {
			return err
		}
		if err = requireSerial(item, serial); err != nil {
			return err
		}
		mov, err = uc.service.Adjust(ctx, ledger(repos), inventory.AdjustInput{
			ItemID:       item.ID,
			LocationID:   loc.ID,
			NewQuantity:  newQty,
			UserID:       userID,
			Reason:       reason,
			LotID:        lotID(lot),
			SerialNumber: serial,
		})
		return err
	})
	if err != nil {
		logFailure(uc.log, "adjust", err)
		return nil, err
	}

	previous := newQty.Decimal().Sub(mov.Quantity)
	uc.log.Info().
		Str("item_sku", item.SKU).
		Str("location", loc.Code).
		Str("previous", previous.String()).
		Str("new", newQty.String()).
		Str("user_id", userID).
		Msg("stock ajustado")

	return &dto.AdjustmentResult{
		MovementID:       mov.ID,
		ItemSKU:          item.SKU,
		LocationCode:     loc.Code,
		PreviousQuantity: previous,
		NewQuantity:      newQty.Decimal(),
		Delta:            mov.Quantity,
		Timestamp:        mov.Timestamp,
	}, nil
}
