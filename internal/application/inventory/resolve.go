package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// ledger arma el Ledger del servicio con los repos de la transacción.
func ledger(repos repository.Repos) inventory.Ledger {
	return inventory.Ledger{Stock: repos.Stock, Movements: repos.Movements}
}

// resolveItem busca por SKU y, si no aparece, por código de barras.
func resolveItem(ctx context.Context, items repository.ItemRepository, code string) (*entity.Item, error) {
	sku := valueobject.NormalizeSKU(code)
	item, err := items.GetBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("buscar artículo %s: %w", sku, err)
	}
	if item == nil {
		if bc, bErr := valueobject.NewBarcode(code); bErr == nil {
			if item, err = items.GetByBarcode(ctx, bc.String()); err != nil {
				return nil, fmt.Errorf("buscar artículo por código de barras: %w", err)
			}
		}
	}
	if item == nil {
		return nil, domain.NewRuleError(domain.ErrNotFound, domain.CodeItemNotFound,
			"No se encontró el artículo con SKU '%s'", sku)
	}
	return item, nil
}

func requireActiveItem(item *entity.Item) error {
	if !item.IsActive {
		return domain.NewRuleError(domain.ErrInactive, domain.CodeItemInactive,
			"El artículo '%s' está inactivo", item.SKU)
	}
	return nil
}

// resolveLocation busca por código; label distingue origen/destino en el mensaje.
func resolveLocation(ctx context.Context, locations repository.LocationRepository, code, label string) (*entity.Location, error) {
	c := valueobject.NormalizeCode(code)
	loc, err := locations.GetByCode(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("buscar ubicación %s: %w", c, err)
	}
	if loc == nil {
		return nil, domain.NewRuleError(domain.ErrNotFound, domain.CodeLocationNotFound,
			"No se encontró la ubicación%s '%s'", label, c)
	}
	return loc, nil
}

func requireReceivable(loc *entity.Location) error {
	if !loc.IsReceivable {
		return domain.NewRuleError(domain.ErrCapabilityMismatch, domain.CodeLocationNotReceivable,
			"La ubicación '%s' no es recibible", loc.Code)
	}
	return requireActiveLocation(loc)
}

func requirePickable(loc *entity.Location) error {
	if !loc.IsPickable {
		return domain.NewRuleError(domain.ErrCapabilityMismatch, domain.CodeLocationNotPickable,
			"La ubicación '%s' no es despachable", loc.Code)
	}
	return requireActiveLocation(loc)
}

func requireActiveLocation(loc *entity.Location) error {
	if !loc.IsActive {
		return domain.NewRuleError(domain.ErrInactive, domain.CodeLocationInactive,
			"La ubicación '%s' está inactiva", loc.Code)
	}
	return nil
}

// resolveOutboundLot elige el lote del bucket de salida. Un artículo con lote obligatorio debe
// indicarlo; uno sin control de lote usa el bucket sin lote salvo que se pida uno explícito.
func resolveOutboundLot(ctx context.Context, lots repository.LotRepository, item *entity.Item, lotNumber string) (*entity.Lot, error) {
	number := valueobject.NormalizeLotNumber(lotNumber)
	if number == "" {
		if item.RequiresLot {
			return nil, lotRequired(item)
		}
		return nil, nil
	}
	lot, err := lots.GetByNumberAndItem(ctx, number, item.ID)
	if err != nil {
		return nil, fmt.Errorf("buscar lote %s: %w", number, err)
	}
	if lot == nil {
		return nil, domain.NewRuleError(domain.ErrNotFound, domain.CodeLotNotFound,
			"No se encontró el lote '%s' del artículo '%s'", number, item.SKU)
	}
	return lot, nil
}

func lotRequired(item *entity.Item) error {
	return domain.NewRuleError(domain.ErrMissingAttribute, domain.CodeLotRequired,
		"El artículo '%s' requiere un número de lote", item.SKU)
}

func requireSerial(item *entity.Item, serial string) error {
	if item.RequiresSerial && serial == "" {
		return domain.NewRuleError(domain.ErrMissingAttribute, domain.CodeSerialRequired,
			"El artículo '%s' requiere un número de serie", item.SKU)
	}
	return nil
}

// checkAvailability relee el bucket con bloqueo y compara contra lo solicitado.
func checkAvailability(ctx context.Context, stock repository.StockRepository, key entity.StockKey,
	item *entity.Item, loc *entity.Location, requested valueobject.Quantity) (*entity.Stock, error) {
	bucket, err := stock.GetForUpdate(ctx, key)
	if err != nil {
		return nil, err
	}
	if bucket == nil {
		return nil, domain.NewRuleError(domain.ErrNotFound, domain.CodeStockNotFound,
			"No se encontró stock para el artículo '%s' en la ubicación '%s'", item.SKU, loc.Code)
	}
	if bucket.QuantityAvailable.LessThan(requested) {
		return nil, domain.NewRuleError(domain.ErrInsufficientStock, domain.CodeInsufficientStock,
			"Stock insuficiente. Disponible: %s, Solicitado: %s", bucket.QuantityAvailable, requested)
	}
	return bucket, nil
}

// parseQuantity exige una cantidad estrictamente positiva y con la escala que se persiste.
func parseQuantity(d decimal.Decimal) (valueobject.Quantity, error) {
	q, err := valueobject.NewQuantity(d)
	if err != nil || !q.IsPositive() {
		return valueobject.Quantity{}, domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation,
			"La cantidad debe ser mayor que cero (recibido: %s)", d)
	}
	if err := checkScale(d); err != nil {
		return valueobject.Quantity{}, err
	}
	return q, nil
}

func checkScale(d decimal.Decimal) error {
	if !valueobject.FitsScale(d) {
		return domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation,
			"La cantidad admite como máximo %d decimales (recibido: %s)", valueobject.MaxScale, d)
	}
	return nil
}

func requireUser(userID string) error {
	if userID == "" {
		return domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation, "falta el usuario que ejecuta la operación")
	}
	return nil
}

func lotID(lot *entity.Lot) string {
	if lot == nil {
		return ""
	}
	return lot.ID
}

func lotNumber(lot *entity.Lot) string {
	if lot == nil {
		return ""
	}
	return lot.Number
}

// logFailure: rechazos de negocio a debug, violaciones de invariante y fallas de infraestructura a error.
func logFailure(log *logger.Logger, op string, err error) {
	if _, ok := domain.AsRuleError(err); ok {
		log.Debug().Str("op", op).Err(err).Msg("operación rechazada")
		return
	}
	ev := log.Error().Str("op", op).Err(err)
	if errors.Is(err, domain.ErrInvariantViolation) {
		ev = ev.Bool("invariant", true)
	}
	ev.Msg("operación de inventario fallida")
}

// newLot prepara un lote nuevo con las fechas suministradas.
func newLot(itemID, number string, expiry, manufactured *time.Time, now time.Time) *entity.Lot {
	return &entity.Lot{
		ID:               uuid.NewString(),
		Number:           number,
		ItemID:           itemID,
		ExpiryDate:       expiry,
		ManufacturedDate: manufactured,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
