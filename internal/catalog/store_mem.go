package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore backs tests and offline demos. Same semantics as the SQL store.
type MemoryStore struct {
	mu        sync.RWMutex
	courses   map[string]Course
	lessons   map[string][]Lesson   // courseID -> lessons
	questions map[string][]Question // courseID -> questions with choices
}

func NewInMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses:   map[string]Course{},
		lessons:   map[string][]Lesson{},
		questions: map[string][]Question{},
	}
}

func (m *MemoryStore) PutCourse(_ context.Context, c Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Lessons = nil
	c.IsEnrolled = false
	m.courses[c.ID] = c
	return nil
}

func (m *MemoryStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	c.Lessons = append([]Lesson(nil), m.lessons[id]...)
	return c, nil
}

func (m *MemoryStore) ListCourses(_ context.Context, limit int) ([]Course, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalEnrollment != out[j].TotalEnrollment {
			return out[i].TotalEnrollment > out[j].TotalEnrollment
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) PutLesson(_ context.Context, l Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[l.CourseID]; !ok {
		return ErrNotFound
	}
	ls := m.lessons[l.CourseID]
	for i := range ls {
		if ls[i].ID == l.ID {
			ls[i] = l
			return nil
		}
	}
	m.lessons[l.CourseID] = append(ls, l)
	return nil
}

func (m *MemoryStore) PutQuestion(_ context.Context, q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[q.CourseID]; !ok {
		return ErrNotFound
	}
	qs := m.questions[q.CourseID]
	for i := range qs {
		if qs[i].ID == q.ID {
			qs[i] = q
			return nil
		}
	}
	m.questions[q.CourseID] = append(qs, q)
	return nil
}

func (m *MemoryStore) CourseQuestions(_ context.Context, courseID string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.courses[courseID]; !ok {
		return nil, ErrNotFound
	}
	qs := m.questions[courseID]
	out := make([]Question, len(qs))
	for i, q := range qs {
		// Deep-copy choices so callers can't mutate the stored answer key.
		q.Choices = append([]Choice(nil), q.Choices...)
		out[i] = q
	}
	return out, nil
}

// BumpEnrollment is used by the in-memory enrollment store to keep the
// counter invariant without a shared database.
func (m *MemoryStore) BumpEnrollment(courseID string, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseID]
	if !ok {
		return
	}
	c.TotalEnrollment += delta
	m.courses[courseID] = c
}

// HasCourse reports course existence without copying lessons.
func (m *MemoryStore) HasCourse(courseID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.courses[courseID]
	return ok
}
