package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/report"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// reportRenderer genera el PDF del reporte (lo implementa *pdf.MovementReportPDF).
type reportRenderer interface {
	Render(ctx context.Context, rep *dto.MovementReportResponse, filter dto.MovementReportRequest) ([]byte, error)
}

// ReportHandler reporte de movimientos en JSON y PDF (protegido).
type ReportHandler struct {
	uc  *report.MovementReportUseCase
	pdf reportRenderer
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.MovementReportUseCase, pdf reportRenderer, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, log: log.Named("http_reports")}
}

// Movements godoc
// @Summary      Reporte de movimientos
// @Description  Por defecto los últimos 30 días. Filtros de texto por subcadena sin distinguir mayúsculas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from           query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to             query  string  false  "Hasta (YYYY-MM-DD incluye el día completo)"
// @Param        item_sku       query  string  false  "SKU del artículo"
// @Param        location_code  query  string  false  "Ubicación origen o destino"
// @Param        type           query  string  false  "Receipt, Putaway, Pick o Adjustment"
// @Param        user_id        query  string  false  "Usuario"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	out, _, err := h.build(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MovementsPDF godoc
// @Summary      Reporte de movimientos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from           query  string  false  "Desde"
// @Param        to             query  string  false  "Hasta"
// @Param        item_sku       query  string  false  "SKU del artículo"
// @Param        location_code  query  string  false  "Ubicación"
// @Param        type           query  string  false  "Tipo de movimiento"
// @Param        user_id        query  string  false  "Usuario"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	out, req, err := h.build(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	body, err := h.pdf.Render(c.UserContext(), out, req)
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("generar PDF: %w", err))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="movimientos_%s_%s.pdf"`, out.From.Format("20060102"), out.To.Format("20060102")))
	return c.Send(body)
}

func (h *ReportHandler) build(c *fiber.Ctx) (*dto.MovementReportResponse, dto.MovementReportRequest, error) {
	req := dto.MovementReportRequest{
		ItemSKU:      c.Query("item_sku"),
		LocationCode: c.Query("location_code"),
		MovementType: c.Query("type"),
		UserID:       c.Query("user_id"),
	}
	var err error
	if req.FromDate, err = parseDateParam("from", c.Query("from"), false); err != nil {
		return nil, req, err
	}
	if req.ToDate, err = parseDateParam("to", c.Query("to"), true); err != nil {
		return nil, req, err
	}
	rows, err := h.uc.Execute(c.UserContext(), req)
	if err != nil {
		return nil, req, err
	}
	from, to := h.uc.Range(req)
	return &dto.MovementReportResponse{From: from, To: to, Count: len(rows), Rows: rows}, req, nil
}

// parseDateParam acepta YYYY-MM-DD o RFC3339. Una fecha sin hora usada como límite superior
// se corre al día siguiente para incluir el día completo.
func parseDateParam(name, v string, upper bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation,
			"El parámetro '%s' debe tener formato YYYY-MM-DD o RFC3339", name)
	}
	if upper {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
