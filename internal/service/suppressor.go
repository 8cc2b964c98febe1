package service

import (
	"sync"
	"time"
)

// Suppressor remembers approvals the user just acted on so a poll that
// raced the action cannot bring them back. An id is released by the first
// successful poll that no longer contains it, or when ttl passes.
type Suppressor struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	ids map[string]time.Time
}

func NewSuppressor(ttl time.Duration) *Suppressor {
	return &Suppressor{
		ttl: ttl,
		now: time.Now,
		ids: make(map[string]time.Time),
	}
}

func (s *Suppressor) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids[id] = s.now().Add(s.ttl)
}

// Reconcile takes the ids of a successful poll and returns those that must
// stay hidden.
func (s *Suppressor) Reconcile(present []string) map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(present))
	for _, id := range present {
		seen[id] = struct{}{}
	}

	now := s.now()
	hidden := make(map[string]struct{})

	for id, deadline := range s.ids {
		_, stillThere := seen[id]

		if !stillThere || now.After(deadline) {
			delete(s.ids, id)
			continue
		}

		hidden[id] = struct{}{}
	}

	return hidden
}

func (s *Suppressor) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[id]

	return ok
}

func (s *Suppressor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.ids)
}
