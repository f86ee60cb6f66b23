package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// Textos de reemplazo cuando la referencia del movimiento ya no existe.
const (
	UnknownItemSKU  = "N/A"
	UnknownItemName = "Artículo desconocido"
)

// MovementReportUseCase reporte de solo lectura sobre el libro de movimientos.
type MovementReportUseCase struct {
	movements repository.MovementRepository
	now       func() time.Time
	log       *logger.Logger
}

// Option configura el caso de uso.
type Option func(*MovementReportUseCase)

// WithClock reemplaza el reloj usado para el rango por defecto.
func WithClock(now func() time.Time) Option {
	return func(uc *MovementReportUseCase) { uc.now = now }
}

// NewMovementReportUseCase construye el caso de uso.
func NewMovementReportUseCase(movements repository.MovementRepository, log *logger.Logger, opts ...Option) *MovementReportUseCase {
	uc := &MovementReportUseCase{
		movements: movements,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.Named("movement_report"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Range devuelve el rango efectivo: por defecto desde hoy-30 días hasta mañana (incluye hoy completo).
func (uc *MovementReportUseCase) Range(req dto.MovementReportRequest) (time.Time, time.Time) {
	today := truncateDay(uc.now())
	from := today.AddDate(0, 0, -30)
	to := today.AddDate(0, 0, 1)
	if req.FromDate != nil {
		from = *req.FromDate
	}
	if req.ToDate != nil {
		to = *req.ToDate
	}
	return from, to
}

// Execute filtra por rango y tipo en el repositorio, aplica los filtros de texto
// y devuelve las filas más recientes primero.
func (uc *MovementReportUseCase) Execute(ctx context.Context, req dto.MovementReportRequest) ([]dto.MovementReportRow, error) {
	from, to := uc.Range(req)
	if to.Before(from) {
		return nil, domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation,
			"El rango de fechas es inválido: desde %s hasta %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	filter := repository.MovementFilter{From: from, To: to}
	if t := strings.TrimSpace(req.MovementType); t != "" {
		mt, ok := entity.ParseMovementType(t)
		if !ok {
			return nil, domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation, "Tipo de movimiento desconocido '%s'", t)
		}
		filter.Type = &mt
	}

	lines, err := uc.movements.ListLines(ctx, filter)
	if err != nil {
		if ctx.Err() == nil {
			uc.log.Error().Err(err).Msg("error generando reporte de movimientos")
		}
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	itemTerm := strings.ToUpper(strings.TrimSpace(req.ItemSKU))
	locTerm := strings.ToUpper(strings.TrimSpace(req.LocationCode))
	userTerm := strings.ToUpper(strings.TrimSpace(req.UserID))

	rows := make([]dto.MovementReportRow, 0, len(lines))
	for _, l := range lines {
		if itemTerm != "" && !containsFold(l.ItemSKU, itemTerm) {
			continue
		}
		if locTerm != "" && !containsFold(l.FromLocationCode, locTerm) && !containsFold(l.ToLocationCode, locTerm) {
			continue
		}
		if userTerm != "" && !strings.Contains(strings.ToUpper(l.UserID), userTerm) {
			continue
		}
		rows = append(rows, toRow(l))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Timestamp.After(rows[j].Timestamp) })

	uc.log.Info().Int("count", len(rows)).Msg("reporte de movimientos generado")
	return rows, nil
}

func toRow(l *entity.MovementLine) dto.MovementReportRow {
	sku, name := UnknownItemSKU, UnknownItemName
	if l.ItemSKU != nil {
		sku = *l.ItemSKU
	}
	if l.ItemName != nil {
		name = *l.ItemName
	}
	return dto.MovementReportRow{
		ID:               l.ID,
		Type:             string(l.Type),
		ItemSKU:          sku,
		ItemName:         name,
		FromLocationCode: l.FromLocationCode,
		ToLocationCode:   l.ToLocationCode,
		Quantity:         l.Quantity,
		LotNumber:        l.LotNumber,
		SerialNumber:     l.SerialNumber,
		UserID:           l.UserID,
		ReferenceNumber:  l.ReferenceNumber,
		Notes:            l.Notes,
		Timestamp:        l.Timestamp,
	}
}

// containsFold: term ya viene en mayúsculas; nil nunca coincide.
func containsFold(s *string, term string) bool {
	return s != nil && strings.Contains(strings.ToUpper(*s), term)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
