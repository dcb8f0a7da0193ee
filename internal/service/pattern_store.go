package service

import (
	"sync"
	"time"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
)

// patternSet is one stored solve result, kept so the host's
// pattern-comparison view can re-fetch candidates without re-solving.
type patternSet struct {
	Response  dto.SolveResponse
	CreatedAt time.Time
}

// patternStore is an in-memory TTL store for solve results. The engine keeps
// no state across invocations beyond this request-scoped cache.
type patternStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]patternSet
}

func newPatternStore(ttl time.Duration) *patternStore {
	return &patternStore{
		ttl:   ttl,
		items: make(map[string]patternSet),
	}
}

func (s *patternStore) Save(id string, resp dto.SolveResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = patternSet{Response: resp, CreatedAt: time.Now()}
}

func (s *patternStore) Get(id string) (dto.SolveResponse, bool) {
	s.mu.RLock()
	set, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return dto.SolveResponse{}, false
	}
	if time.Since(set.CreatedAt) > s.ttl {
		s.Delete(id)
		return dto.SolveResponse{}, false
	}
	return set.Response, true
}

func (s *patternStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
