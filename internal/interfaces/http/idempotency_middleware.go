package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/infrastructure/cache"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// HeaderIdempotencyKey cabecera opcional en los POST de inventario.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// Idempotency evita que un reintento del cliente registre el movimiento dos veces.
// La clave se acota al usuario; si el handler responde >= 400 la clave se libera para permitir el reintento.
// Sin cabecera la petición pasa sin control. Debe usarse DESPUÉS de AuthMiddleware.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IDEMPOTENCY_KEY", Message: "Idempotency-Key demasiado larga"})
		}
		scoped := "idem:" + GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key

		ok, err := store.MarkProcessed(c.UserContext(), scoped, ttl)
		if err != nil {
			log.Error().Err(err).Msg("idempotencia no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo verificar la petición, intente más tarde"})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REQUEST", Message: "la petición con esta Idempotency-Key ya fue procesada"})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			// la clave se libera aunque el cliente ya se haya ido
			if rerr := store.Release(context.WithoutCancel(c.UserContext()), scoped); rerr != nil {
				log.Warn().Err(rerr).Str("key", key).Msg("no se pudo liberar Idempotency-Key")
			}
		}
		return err
	}
}
