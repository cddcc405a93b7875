package enroll

import "context"

// Store is the ledger's persistence boundary.
type Store interface {
	// Create inserts the enrollment and increments the course's
	// total_enrollment counter as one atomic unit. It reports whether a row
	// was actually created: false with a nil error means the pair was
	// already enrolled (idempotent no-op). ErrCourseNotFound when the course
	// is absent, ErrConflict when a concurrent insert hits the uniqueness
	// constraint mid-transaction.
	Create(ctx context.Context, e Enrollment) (created bool, err error)

	Get(ctx context.Context, userID, courseID string) (Enrollment, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	SetRating(ctx context.Context, userID, courseID string, rating float64) error

	// CountForCourse counts distinct enrolled learners; used to audit the
	// counter invariant.
	CountForCourse(ctx context.Context, courseID string) (int, error)
}
