package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a referenced course or question is absent.
var ErrNotFound = errors.New("not found")

// Store is the catalog's persistence boundary. The enrollment ledger owns the
// total_enrollment counter; the catalog only reads it back.
type Store interface {
	PutCourse(ctx context.Context, c Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	// ListCourses returns up to limit courses ordered by total_enrollment
	// descending, as shown on the landing page.
	ListCourses(ctx context.Context, limit int) ([]Course, error)

	PutLesson(ctx context.Context, l Lesson) error

	// PutQuestion writes the question together with its choices.
	PutQuestion(ctx context.Context, q Question) error
	// CourseQuestions returns the course's full question set including
	// is_correct flags. Callers serving learners must strip the flags.
	CourseQuestions(ctx context.Context, courseID string) ([]Question, error)
}
