package enroll

import (
	"context"
	"sync"

	"github.com/learnhub/learnhub-lms/internal/catalog"
)

// MemoryStore mirrors the SQL store's semantics over maps. The mutex makes
// check-insert-increment atomic, so the counter invariant holds under
// concurrent Enroll calls.
type MemoryStore struct {
	mu      sync.Mutex
	catalog *catalog.MemoryStore
	byPair  map[[2]string]Enrollment // (userID, courseID)
}

func NewMemoryStore(cat *catalog.MemoryStore) *MemoryStore {
	return &MemoryStore{catalog: cat, byPair: map[[2]string]Enrollment{}}
}

func (m *MemoryStore) Create(_ context.Context, e Enrollment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.catalog.HasCourse(e.CourseID) {
		return false, ErrCourseNotFound
	}
	k := [2]string{e.UserID, e.CourseID}
	if _, ok := m.byPair[k]; ok {
		return false, nil
	}
	m.byPair[k] = e
	m.catalog.BumpEnrollment(e.CourseID, 1)
	return true, nil
}

func (m *MemoryStore) Get(_ context.Context, userID, courseID string) (Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byPair[[2]string{userID, courseID}]
	if !ok {
		return Enrollment{}, ErrNotEnrolled
	}
	return e, nil
}

func (m *MemoryStore) IsEnrolled(_ context.Context, userID, courseID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byPair[[2]string{userID, courseID}]
	return ok, nil
}

func (m *MemoryStore) SetRating(_ context.Context, userID, courseID string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]string{userID, courseID}
	e, ok := m.byPair[k]
	if !ok {
		return ErrNotEnrolled
	}
	e.Rating = rating
	m.byPair[k] = e
	return nil
}

func (m *MemoryStore) CountForCourse(_ context.Context, courseID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.byPair {
		if k[1] == courseID {
			n++
		}
	}
	return n, nil
}
