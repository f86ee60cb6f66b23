package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// PickUseCase despacha stock desde una ubicación despachable para una orden.
type PickUseCase struct {
	tx      TxRunner
	service *inventory.StockMovementService
	log     *logger.Logger
}

// NewPickUseCase construye el caso de uso.
func NewPickUseCase(tx TxRunner, service *inventory.StockMovementService, log *logger.Logger) *PickUseCase {
	return &PickUseCase{tx: tx, service: service, log: log.Named("picking")}
}

// Execute valida artículo y ubicación, comprueba disponibilidad con la fila bloqueada y descuenta.
// El lote del movimiento es el del bucket despachado.
func (uc *PickUseCase) Execute(ctx context.Context, req dto.PickRequest, userID string) (*dto.PickResult, error) {
	ctx = context.WithoutCancel(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	qty, err := parseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}
	serial := valueobject.NormalizeSerial(req.SerialNumber)
	order := strings.TrimSpace(req.OrderNumber)

	var (
		item   *entity.Item
		loc    *entity.Location
		lot    *entity.Lot
		bucket *entity.Stock
		mov    *entity.Movement
	)
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		if item, err = resolveItem(ctx, repos.Items, req.ItemSKU); err != nil {
			return err
		}
		if err = requireActiveItem(item); err != nil {
			return err
		}
		if loc, err = resolveLocation(ctx, repos.Locations, req.FromLocationCode, ""); err != nil {
			return err
		}
		if err = requirePickable(loc); err != nil {
			return err
		}
		if lot, err = resolveOutboundLot(ctx, repos.Lots, item, req.LotNumber); err != nil {
			return err
		}
		if err = requireSerial(item, serial); err != nil {
			return err
		}
		key := entity.StockKey{ItemID: item.ID, LocationID: loc.ID, LotID: lotID(lot), SerialNumber: serial}
		if bucket, err = checkAvailability(ctx, repos.Stock, key, item, loc, qty); err != nil {
			return err
		}
		mov, err = uc.service.Pick(ctx, ledger(repos), inventory.PickInput{
			ItemID:       item.ID,
			LocationID:   loc.ID,
			Quantity:     qty,
			UserID:       userID,
			LotID:        bucket.LotID,
			SerialNumber: serial,
			OrderNumber:  order,
			Notes:        req.Notes,
		})
		return err
	})
	if err != nil {
		logFailure(uc.log, "pick", err)
		return nil, err
	}

	uc.log.Info().
		Str("item_sku", item.SKU).
		Str("location", loc.Code).
		Str("quantity", qty.String()).
		Str("order", order).
		Str("user_id", userID).
		Msg("artículo despachado")

	return &dto.PickResult{
		MovementID:       mov.ID,
		ItemSKU:          item.SKU,
		FromLocationCode: loc.Code,
		Quantity:         qty.Decimal(),
		OrderNumber:      order,
		LotNumber:        lotNumber(lot),
		Timestamp:        mov.Timestamp,
	}, nil
}
