package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// ReceiveUseCase registra la entrada de mercancía a una ubicación recibible.
type ReceiveUseCase struct {
	tx      TxRunner
	service *inventory.StockMovementService
	log     *logger.Logger
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(tx TxRunner, service *inventory.StockMovementService, log *logger.Logger) *ReceiveUseCase {
	return &ReceiveUseCase{tx: tx, service: service, log: log.Named("receiving")}
}

// Execute valida artículo, ubicación, lote y serie, crea o actualiza el lote y suma el stock,
// todo en una sola transacción. No se puede cancelar una vez iniciado.
func (uc *ReceiveUseCase) Execute(ctx context.Context, req dto.ReceiveItemRequest, userID string) (*dto.ReceiptResult, error) {
	ctx = context.WithoutCancel(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	qty, err := parseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}
	serial := valueobject.NormalizeSerial(req.SerialNumber)
	number := valueobject.NormalizeLotNumber(req.LotNumber)

	var (
		item *entity.Item
		loc  *entity.Location
		lot  *entity.Lot
		mov  *entity.Movement
	)
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		if item, err = resolveItem(ctx, repos.Items, req.ItemSKU); err != nil {
			return err
		}
		if err = requireActiveItem(item); err != nil {
			return err
		}
		if loc, err = resolveLocation(ctx, repos.Locations, req.LocationCode, ""); err != nil {
			return err
		}
		if err = requireReceivable(loc); err != nil {
			return err
		}
		if number == "" && item.RequiresLot {
			return lotRequired(item)
		}
		if err = requireSerial(item, serial); err != nil {
			return err
		}
		if number != "" {
			if lot, err = uc.getOrCreateLot(ctx, repos.Lots, item.ID, number, req.ExpiryDate, req.ManufacturedDate); err != nil {
				return err
			}
		}
		mov, err = uc.service.Receive(ctx, ledger(repos), inventory.ReceiveInput{
			ItemID:          item.ID,
			LocationID:      loc.ID,
			Quantity:        qty,
			UserID:          userID,
			LotID:           lotID(lot),
			SerialNumber:    serial,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
		})
		return err
	})
	if err != nil {
		logFailure(uc.log, "receive", err)
		return nil, err
	}

	uc.log.Info().
		Str("item_sku", item.SKU).
		Str("location", loc.Code).
		Str("quantity", qty.String()).
		Str("lot", lotNumber(lot)).
		Str("user_id", userID).
		Msg("artículo recibido")

	return &dto.ReceiptResult{
		MovementID:   mov.ID,
		ItemSKU:      item.SKU,
		LocationCode: loc.Code,
		Quantity:     qty.Decimal(),
		LotNumber:    lotNumber(lot),
		SerialNumber: serial,
		Timestamp:    mov.Timestamp,
	}, nil
}

// getOrCreateLot devuelve el lote existente (actualizando fechas si llegaron nuevas) o lo crea.
func (uc *ReceiveUseCase) getOrCreateLot(ctx context.Context, lots repository.LotRepository,
	itemID, number string, expiry, manufactured *time.Time) (*entity.Lot, error) {
	now := uc.service.Now()
	lot, err := lots.GetByNumberAndItem(ctx, number, itemID)
	if err != nil {
		return nil, fmt.Errorf("buscar lote %s: %w", number, err)
	}
	if lot != nil {
		if lot.UpdateDates(expiry, manufactured, now) {
			if err := lots.Update(ctx, lot); err != nil {
				return nil, fmt.Errorf("actualizar lote %s: %w", number, err)
			}
		}
		return lot, nil
	}
	lot = newLot(itemID, number, expiry, manufactured, now)
	if err := lots.Create(ctx, lot); err != nil {
		return nil, fmt.Errorf("crear lote %s: %w", number, err)
	}
	return lot, nil
}
