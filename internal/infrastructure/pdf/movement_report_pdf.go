// Package pdf genera el reporte de movimientos de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del sistema   │  Rango de fechas + emisión  │
//	│  FILTROS: artículo / ubicación / tipo / usuario             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | SKU | Desde | Hacia | Lote | Cant.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: cantidad neta por tipo de movimiento              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNeg     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dash = "—"

// ── Generator ─────────────────────────────────────────────────────────────────

// MovementReportPDF genera el reporte de movimientos con Maroto v2.
type MovementReportPDF struct {
	title string
	now   func() time.Time
}

// NewMovementReportPDF construye el generador; title encabeza cada reporte.
func NewMovementReportPDF(title string) *MovementReportPDF {
	return &MovementReportPDF{title: title, now: time.Now}
}

// Render genera el PDF del reporte y devuelve sus bytes.
func (g *MovementReportPDF) Render(ctx context.Context, report *dto.MovementReportResponse, filter dto.MovementReportRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de movimientos", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(filterRow(filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No hay movimientos para los filtros seleccionados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range report.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.AddRows(detailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(report.Rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MovementReportPDF) headerRow(report *dto.MovementReportResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("REPORTE DE MOVIMIENTOS DE INVENTARIO", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Desde %s hasta %s", report.From.Format("02/01/2006"), report.To.Format("02/01/2006")), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("%d movimientos  |  Emitido %s", report.Count, g.now().Format("02/01/2006 15:04")), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func filterRow(f dto.MovementReportRequest) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Artículo: %s   |   Ubicación: %s   |   Tipo: %s   |   Usuario: %s",
			nonEmpty(f.ItemSKU, "todos"),
			nonEmpty(f.LocationCode, "todas"),
			nonEmpty(f.MovementType, "todos"),
			nonEmpty(f.UserID, "todos"),
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("SKU", 2, align.Left),
		h("Desde", 1, align.Left),
		h("Hacia", 1, align.Left),
		h("Lote / Serie", 2, align.Left),
		h("Cantidad", 1, align.Right),
		h("Usuario / Ref.", 2, align.Left),
	)
}

func detailRow(r dto.MovementReportRow) core.Row {
	cell := func(s string, size int, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1, Color: color}))
	}
	var qtyColor *props.Color
	if r.Quantity.IsNegative() {
		qtyColor = colorNeg
	}
	lotSerial := nonEmpty(ptr(r.LotNumber), dash)
	if r.SerialNumber != "" {
		lotSerial += " / " + r.SerialNumber
	}
	userRef := r.UserID
	if r.ReferenceNumber != "" {
		userRef += " / " + r.ReferenceNumber
	}
	return row.New(6).Add(
		cell(r.Timestamp.Format("02/01/2006 15:04"), 2, align.Left, nil),
		cell(typeLabel(r.Type), 1, align.Left, nil),
		cell(r.ItemSKU, 2, align.Left, nil),
		cell(nonEmpty(ptr(r.FromLocationCode), dash), 1, align.Left, nil),
		cell(nonEmpty(ptr(r.ToLocationCode), dash), 1, align.Left, nil),
		cell(lotSerial, 2, align.Left, nil),
		cell(formatQuantity(r.Quantity), 1, align.Right, qtyColor),
		cell(userRef, 2, align.Left, colorGray),
	)
}

// totalsRows: una fila por tipo con la suma de cantidades (los ajustes suman su delta con signo).
func totalsRows(rows []dto.MovementReportRow) []core.Row {
	totals := TotalsByType(rows)
	out := []core.Row{row.New(6).Add(col.New(12).Add(
		text.New("TOTALES POR TIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))}
	for _, t := range movementTypes {
		out = append(out, row.New(5).Add(
			col.New(8),
			col.New(2).Add(text.New(typeLabel(string(t))+":", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})),
			col.New(2).Add(text.New(formatQuantity(totals[string(t)]), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

var movementTypes = []entity.MovementType{
	entity.MovementTypeReceipt, entity.MovementTypePutaway, entity.MovementTypePick, entity.MovementTypeAdjustment,
}

// TotalsByType suma las cantidades de las filas por tipo de movimiento.
func TotalsByType(rows []dto.MovementReportRow) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(movementTypes))
	for _, t := range movementTypes {
		totals[string(t)] = decimal.Zero
	}
	for _, r := range rows {
		totals[r.Type] = totals[r.Type].Add(r.Quantity)
	}
	return totals
}

func typeLabel(t string) string {
	switch entity.MovementType(t) {
	case entity.MovementTypeReceipt:
		return "Recepción"
	case entity.MovementTypePutaway:
		return "Almacenaje"
	case entity.MovementTypePick:
		return "Despacho"
	case entity.MovementTypeAdjustment:
		return "Ajuste"
	}
	return t
}

// formatQuantity sin ceros decimales sobrantes: 40 -> "40", 2.5000 -> "2.5".
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func ptr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
