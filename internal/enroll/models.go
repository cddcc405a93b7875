package enroll

import "errors"

// Mode is the enrollment category a learner joins a course under.
type Mode string

const (
	ModeAudit Mode = "audit"
	ModeHonor Mode = "honor"
	ModeBeta  Mode = "beta"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeAudit, ModeHonor, ModeBeta:
		return true
	}
	return false
}

// Enrollment links one learner to one course. At most one row may exist per
// (user, course) pair; the storage layer enforces this with a uniqueness
// constraint.
type Enrollment struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	CourseID     string  `json:"course_id"`
	Mode         Mode    `json:"mode"`
	Rating       float64 `json:"rating"`
	DateEnrolled int64   `json:"date_enrolled"` // unix seconds
}

var (
	// ErrCourseNotFound: the target course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrNotEnrolled: no enrollment exists for the (learner, course) pair.
	ErrNotEnrolled = errors.New("not enrolled")
	// ErrUnauthenticated: a mutating call arrived without a learner identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrConflict: a concurrent enroll slipped in between the existence check
	// and the insert; the uniqueness constraint reports it instead of
	// double-counting.
	ErrConflict = errors.New("concurrent enrollment")
	// ErrInvalidRating: rating outside the accepted [0,5] range.
	ErrInvalidRating = errors.New("rating out of range")
)
