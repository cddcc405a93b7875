package catalog

// Course is the catalog's root entity. TotalEnrollment is maintained by the
// enrollment ledger, never written from the catalog side.
type Course struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	PubDate         int64    `json:"pub_date,omitempty"` // unix seconds
	TotalEnrollment int      `json:"total_enrollment"`
	Lessons         []Lesson `json:"lessons,omitempty"`

	// Derived per viewer at read time, never persisted.
	IsEnrolled bool `json:"is_enrolled"`
}

type Lesson struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
	Content  string `json:"content,omitempty"`
}

// Question belongs to one course. Grade is the full point value awarded when
// the learner's selection matches the correct choice set exactly.
type Question struct {
	ID       string   `json:"id"`
	CourseID string   `json:"course_id"`
	Content  string   `json:"content"`
	Grade    int      `json:"grade"`
	Choices  []Choice `json:"choices,omitempty"`
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Content    string `json:"content"`
	IsCorrect  bool   `json:"is_correct,omitempty"`
}
