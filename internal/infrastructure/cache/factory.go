package cache

import (
	"github.com/jhoicas/wms-api/pkg/logger"
)

// NewStore devuelve un RedisStore si cfg.Addr está configurado y responde; si no, un MemoryStore.
// Sin Redis las claves no se comparten entre instancias del API.
func NewStore(cfg RedisConfig, log *logger.Logger) IdempotencyStore {
	if cfg.Addr == "" {
		log.Info().Msg("idempotencia en memoria (REDIS_ADDR vacío)")
		return NewMemoryStore()
	}
	store, err := NewRedisStore(cfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis no disponible, idempotencia en memoria")
		return NewMemoryStore()
	}
	log.Info().Str("addr", cfg.Addr).Msg("idempotencia en Redis")
	return store
}
