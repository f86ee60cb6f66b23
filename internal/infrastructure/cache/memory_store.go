package cache

import (
	"context"
	"sync"
	"time"
)

var _ IdempotencyStore = (*MemoryStore)(nil)

// MemoryStore claves en memoria para una sola instancia (y tests).
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]time.Time // clave -> vencimiento
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore crea el store y arranca la limpieza periódica de claves vencidas.
func NewMemoryStore() *MemoryStore {
	s := newMemoryStore(time.Now)
	s.wg.Add(1)
	go s.cleanupLoop(5 * time.Minute)
	return s
}

func newMemoryStore(now func() time.Time) *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time), now: now, stop: make(chan struct{})}
}

func (s *MemoryStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if exp, ok := s.entries[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Close detiene la limpieza. Se puede llamar varias veces.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

// Len número de claves guardadas (vencidas incluidas hasta la próxima limpieza).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) cleanupLoop(every time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
		}
	}
}
