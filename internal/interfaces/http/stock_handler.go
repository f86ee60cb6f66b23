package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// StockHandler consultas de existencias y lotes (protegido).
type StockHandler struct {
	stock *inventory.StockQueryUseCase
	lots  *inventory.LotQueryUseCase
	log   *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockQueryUseCase, lots *inventory.LotQueryUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{stock: stock, lots: lots, log: log.Named("http_stock")}
}

// List godoc
// @Summary      Existencias por ubicación
// @Description  Buckets con disponible > 0. search filtra por SKU, nombre o código de ubicación.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto a buscar"
// @Success      200  {array}   dto.StockLineDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.stock.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Summary godoc
// @Summary      Resumen valorizado por artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/inventory/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	out, err := h.stock.Summary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SearchLots godoc
// @Summary      Buscar lotes (autocompletado)
// @Description  term vacío devuelve todos los lotes del artículo; menos de 2 caracteres no devuelve nada.
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        term     query  string  false  "Número de lote (subcadena)"
// @Param        item_id  query  string  false  "Artículo"
// @Success      200  {array}   dto.LotDTO
// @Router       /api/lots/search [get]
func (h *StockHandler) SearchLots(c *fiber.Ctx) error {
	out, err := h.lots.Search(c.UserContext(), c.Query("term"), c.Query("item_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LotsByItem godoc
// @Summary      Lotes de un artículo
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        itemID  path  string  true  "ID del artículo"
// @Success      200  {array}   dto.LotDTO
// @Router       /api/lots/by-item/{itemID} [get]
func (h *StockHandler) LotsByItem(c *fiber.Ctx) error {
	out, err := h.lots.ByItem(c.UserContext(), c.Params("itemID"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
