package inventory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// PutawayUseCase mueve stock desde una ubicación (normalmente de recepción) a una de almacenamiento.
type PutawayUseCase struct {
	tx      TxRunner
	service *inventory.StockMovementService
	log     *logger.Logger
}

// NewPutawayUseCase construye el caso de uso.
func NewPutawayUseCase(tx TxRunner, service *inventory.StockMovementService, log *logger.Logger) *PutawayUseCase {
	return &PutawayUseCase{tx: tx, service: service, log: log.Named("putaway")}
}

// Execute valida origen y destino, comprueba disponibilidad con la fila bloqueada y traslada.
func (uc *PutawayUseCase) Execute(ctx context.Context, req dto.PutawayRequest, userID string) (*dto.PutawayResult, error) {
	ctx = context.WithoutCancel(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	qty, err := parseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}
	serial := valueobject.NormalizeSerial(req.SerialNumber)

	var (
		item     *entity.Item
		from, to *entity.Location
		lot      *entity.Lot
		mov      *entity.Movement
	)
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		if item, err = resolveItem(ctx, repos.Items, req.ItemSKU); err != nil {
			return err
		}
		if from, err = resolveLocation(ctx, repos.Locations, req.FromLocationCode, " origen"); err != nil {
			return err
		}
		if to, err = resolveLocation(ctx, repos.Locations, req.ToLocationCode, " destino"); err != nil {
			return err
		}
		if from.ID == to.ID {
			return domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation,
				"La ubicación origen y destino deben ser distintas ('%s')", from.Code)
		}
		if err = requireReceivable(to); err != nil {
			return err
		}
		if lot, err = resolveOutboundLot(ctx, repos.Lots, item, req.LotNumber); err != nil {
			return err
		}
		if err = requireSerial(item, serial); err != nil {
			return err
		}
		key := entity.StockKey{ItemID: item.ID, LocationID: from.ID, LotID: lotID(lot), SerialNumber: serial}
		if _, err = checkAvailability(ctx, repos.Stock, key, item, from, qty); err != nil {
			return err
		}
		mov, err = uc.service.Putaway(ctx, ledger(repos), inventory.PutawayInput{
			ItemID:         item.ID,
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			Quantity:       qty,
			UserID:         userID,
			LotID:          lotID(lot),
			SerialNumber:   serial,
			Notes:          req.Notes,
		})
		return err
	})
	if err != nil {
		logFailure(uc.log, "putaway", err)
		return nil, err
	}

	uc.log.Info().
		Str("item_sku", item.SKU).
		Str("from", from.Code).
		Str("to", to.Code).
		Str("quantity", qty.String()).
		Str("user_id", userID).
		Msg("artículo almacenado")

	return &dto.PutawayResult{
		MovementID:       mov.ID,
		ItemSKU:          item.SKU,
		FromLocationCode: from.Code,
		ToLocationCode:   to.Code,
		Quantity:         qty.Decimal(),
		LotNumber:        lotNumber(lot),
		Timestamp:        mov.Timestamp,
	}, nil
}
