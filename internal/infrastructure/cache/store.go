// Package cache guarda las claves Idempotency-Key de las mutaciones de inventario.
// Receive y Pick no son idempotentes: repetir la petición crea otro movimiento, así que
// la deduplicación se hace antes de llegar al caso de uso.
package cache

import (
	"context"
	"time"
)

// IdempotencyStore marca claves como procesadas durante un TTL.
type IdempotencyStore interface {
	// MarkProcessed devuelve true si la clave se marcó ahora y false si ya estaba marcada.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release libera la clave para que el cliente pueda reintentar (la operación falló).
	Release(ctx context.Context, key string) error
	Close() error
}
