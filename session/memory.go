package session

import (
	"context"
	"sync"
)

// MemoryStore is the single-process fallback used in dev mode and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]CartLine
	metas map[string]CartMeta
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string][]CartLine),
		metas: make(map[string]CartMeta),
	}
}

func (s *MemoryStore) Cart(_ context.Context, sid string, websiteID uint) ([]CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[cartKey(sid, websiteID)]
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *MemoryStore) SaveCart(_ context.Context, sid string, websiteID uint, lines []CartLine) error {
	cp := make([]CartLine, len(lines))
	copy(cp, lines)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartKey(sid, websiteID)] = cp
	return nil
}

func (s *MemoryStore) ClearCart(_ context.Context, sid string, websiteID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey(sid, websiteID))
	return nil
}

func (s *MemoryStore) Meta(_ context.Context, sid string, websiteID uint) (CartMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metas[metaKey(sid, websiteID)], nil
}

func (s *MemoryStore) SaveMeta(_ context.Context, sid string, websiteID uint, meta CartMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metas[metaKey(sid, websiteID)] = meta
	return nil
}
