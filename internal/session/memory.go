package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/spigell/resume-screener/internal/dialogue"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("cannot create nil session")
	}
	if err := validateID(s.ID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; ok {
		return fmt.Errorf("%s: %w", s.ID, ErrExists)
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) AppendTurns(_ context.Context, id string, turns ...dialogue.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	s.appendTurns(turns...)
	return nil
}
