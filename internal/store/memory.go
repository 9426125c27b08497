package store

import (
	"context"
	"sync"
)

// Limits applied by NewMemoryStore.
const (
	DefaultMemoryPerSession = 1000
	DefaultMemorySessions   = 256
)

// MemoryStore keeps incidents in process. Used when no database is configured.
// It keeps the newest perSession incidents of the newest maxSessions sessions.
type MemoryStore struct {
	incidents   map[string][]Incident // session code -> incidents in record order
	order       []string              // session codes, oldest first
	perSession  int
	maxSessions int
	closed      bool
	mu          sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return NewBoundedMemoryStore(DefaultMemoryPerSession, DefaultMemorySessions)
}

// NewBoundedMemoryStore creates a store with explicit limits. Values below 1
// are raised to 1.
func NewBoundedMemoryStore(perSession, maxSessions int) *MemoryStore {
	return &MemoryStore{
		incidents:   make(map[string][]Incident),
		perSession:  max(perSession, 1),
		maxSessions: max(maxSessions, 1),
	}
}

func (s *MemoryStore) Record(_ context.Context, inc Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	list, ok := s.incidents[inc.SessionCode]
	if !ok {
		s.order = append(s.order, inc.SessionCode)
		for len(s.order) > s.maxSessions {
			delete(s.incidents, s.order[0])
			s.order = s.order[1:]
		}
	}

	list = append(list, inc)
	if len(list) > s.perSession {
		// copy so the dropped prefix can be collected
		list = append([]Incident(nil), list[len(list)-s.perSession:]...)
	}
	s.incidents[inc.SessionCode] = list
	return nil
}

func (s *MemoryStore) ListBySession(_ context.Context, sessionCode string, limit int) ([]Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	all := s.incidents[sessionCode]
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Incident, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
