package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// MovementHandler maneja las mutaciones de stock: recepción, almacenamiento, despacho y ajuste (protegido).
type MovementHandler struct {
	receive *inventory.ReceiveUseCase
	putaway *inventory.PutawayUseCase
	pick    *inventory.PickUseCase
	adjust  *inventory.AdjustStockUseCase
	log     *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	receive *inventory.ReceiveUseCase,
	putaway *inventory.PutawayUseCase,
	pick *inventory.PickUseCase,
	adjust *inventory.AdjustStockUseCase,
	log *logger.Logger,
) *MovementHandler {
	return &MovementHandler{receive: receive, putaway: putaway, pick: pick, adjust: adjust, log: log.Named("http_movements")}
}

// Receive godoc
// @Summary      Recibir mercancía
// @Description  Ingresa stock en una ubicación receptora. item_sku acepta también código de barras.
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.ReceiveItemRequest  true   "Artículo, ubicación, cantidad, lote/serie"
// @Success      201   {object}  dto.ReceiptResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receiving [post]
func (h *MovementHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveItemRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.receive.Execute(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Putaway godoc
// @Summary      Almacenar (mover entre ubicaciones)
// @Tags         putaway
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string              false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.PutawayRequest  true   "Artículo, origen, destino, cantidad"
// @Success      201   {object}  dto.PutawayResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/putaway [post]
func (h *MovementHandler) Putaway(c *fiber.Ctx) error {
	var in dto.PutawayRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.putaway.Execute(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Pick godoc
// @Summary      Despachar (picking)
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string           false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.PickRequest  true   "Artículo, ubicación, cantidad, pedido"
// @Success      201   {object}  dto.PickResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/picking [post]
func (h *MovementHandler) Pick(c *fiber.Ctx) error {
	var in dto.PickRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.pick.Execute(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajuste de inventario (conteo físico)
// @Description  Fija la cantidad disponible del bucket; el movimiento guarda el delta con signo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Artículo, ubicación, cantidad nueva, motivo"
// @Success      201   {object}  dto.AdjustmentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *MovementHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.adjust.Execute(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
