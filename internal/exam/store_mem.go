package exam

import (
	"context"
	"sync"
)

// MemoryStore keeps submissions in a map for tests and offline mode.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[string]Submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: map[string]Submission{}}
}

func (m *MemoryStore) CreateSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[s.ID] = s
	return nil
}

func (m *MemoryStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subs[id]
	if !ok {
		return Submission{}, ErrSubmissionNotFound
	}
	return s, nil
}
