package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
)

const (
	minLotSearchLen = 2
	maxLotResults   = 50
)

// LotQueryUseCase búsquedas de lotes para autocompletado. Respeta la cancelación del contexto:
// una búsqueda reemplazada por otra más reciente se aborta.
type LotQueryUseCase struct {
	lots repository.LotRepository
	now  func() time.Time
	log  *logger.Logger
}

// NewLotQueryUseCase construye el caso de uso.
func NewLotQueryUseCase(lots repository.LotRepository, log *logger.Logger) *LotQueryUseCase {
	return &LotQueryUseCase{lots: lots, now: func() time.Time { return time.Now().UTC() }, log: log.Named("lot_query")}
}

// ByItem lotes activos del artículo ordenados por número.
func (uc *LotQueryUseCase) ByItem(ctx context.Context, itemID string) ([]dto.LotDTO, error) {
	if strings.TrimSpace(itemID) == "" {
		return []dto.LotDTO{}, nil
	}
	lots, err := uc.lots.ListByItem(ctx, itemID)
	if err != nil {
		return nil, uc.fail(ctx, "listar lotes", err)
	}
	return uc.toDTOs(lots), nil
}

// Search término vacío: todos los lotes del artículo; menos de 2 caracteres: nada;
// si no, subcadena (máximo 50 resultados).
func (uc *LotQueryUseCase) Search(ctx context.Context, term, itemID string) ([]dto.LotDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.ByItem(ctx, itemID)
	}
	if len([]rune(term)) < minLotSearchLen {
		return []dto.LotDTO{}, nil
	}
	lots, err := uc.lots.Search(ctx, strings.TrimSpace(itemID), term, maxLotResults)
	if err != nil {
		return nil, uc.fail(ctx, "buscar lotes", err)
	}
	return uc.toDTOs(lots), nil
}

func (uc *LotQueryUseCase) fail(ctx context.Context, op string, err error) error {
	// una búsqueda cancelada no es una falla
	if ctx.Err() == nil {
		uc.log.Error().Err(err).Msg(op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (uc *LotQueryUseCase) toDTOs(lots []*entity.Lot) []dto.LotDTO {
	now := uc.now()
	out := make([]dto.LotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotDTO{
			ID:               l.ID,
			Number:           l.Number,
			ItemID:           l.ItemID,
			ExpiryDate:       l.ExpiryDate,
			ManufacturedDate: l.ManufacturedDate,
			IsExpired:        l.IsExpired(now),
		})
	}
	return out
}
