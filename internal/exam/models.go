package exam

import "errors"

// Submission is one immutable exam attempt: the set of choices a learner
// selected, linked to their enrollment. Scores are never stored on it;
// grading re-derives them from the current answer key every time.
type Submission struct {
	ID           string   `json:"id"`
	EnrollmentID string   `json:"enrollment_id"`
	CourseID     string   `json:"course_id"`
	UserID       string   `json:"user_id"`
	ChoiceIDs    []string `json:"choice_ids"`
	CreatedAt    int64    `json:"created_at"` // unix seconds
}

var (
	// ErrSubmissionNotFound: no submission with the given id, or the
	// submission does not belong to the requested course.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrChoiceNotInCourse: a selected choice id does not belong to any
	// question of the target course.
	ErrChoiceNotInCourse = errors.New("choice does not belong to course")
)
