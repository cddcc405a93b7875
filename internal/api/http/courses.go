package http

import (
	"encoding/json"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-lms/internal/catalog"
	"github.com/learnhub/learnhub-lms/internal/enroll"
	"github.com/learnhub/learnhub-lms/internal/rbac"
)

// Handlers only; routes remain in main.go

// defaultQuestionGrade matches the questions.grade column default.
const defaultQuestionGrade = 50

// GET /courses — top courses by enrollment. is_enrolled is derived per
// viewer at read time; anonymous viewers always see false.
func ListCoursesHandler(store catalog.Store, ledger *enroll.Ledger, limit int) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		courses, err := store.ListCourses(r.Context(), limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		viewer := rbac.SubjectFromContext(r.Context())
		if viewer != "" {
			for i := range courses {
				enrolled, err := ledger.IsEnrolled(r.Context(), viewer, courses[i].ID)
				if err != nil {
					writeErr(w, err)
					return
				}
				courses[i].IsEnrolled = enrolled
			}
		}
		_ = json.NewEncoder(w).Encode(courses)
	}
}

// GET /courses/{courseID}
func GetCourseHandler(store catalog.Store, ledger *enroll.Ledger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		if viewer := rbac.SubjectFromContext(r.Context()); viewer != "" {
			enrolled, err := ledger.IsEnrolled(r.Context(), viewer, id)
			if err != nil {
				writeErr(w, err)
				return
			}
			c.IsEnrolled = enrolled
		}
		_ = json.NewEncoder(w).Encode(c)
	}
}

// POST /courses  (instructor)
func CreateCourseHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			PubDate     int64  `json:"pub_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		c := catalog.Course{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			PubDate:     req.PubDate,
		}
		if err := store.PutCourse(r.Context(), c); err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(c)
	}
}

// POST /courses/{courseID}/lessons  (instructor)
func CreateLessonHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		courseID := chi.URLParam(r, "courseID")
		var req struct {
			Title   string `json:"title"`
			Order   int    `json:"order"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		l := catalog.Lesson{
			ID:       uuid.NewString(),
			CourseID: courseID,
			Title:    strings.TrimSpace(req.Title),
			Order:    req.Order,
			Content:  req.Content,
		}
		if err := store.PutLesson(r.Context(), l); err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(l)
	}
}

// POST /courses/{courseID}/questions  (instructor) — question plus choices.
func CreateQuestionHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		courseID := chi.URLParam(r, "courseID")
		var req struct {
			Content string `json:"content"`
			Grade   *int   `json:"grade"`
			Choices []struct {
				Content   string `json:"content"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"choices"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		// Omitted grade falls back to the schema default.
		grade := defaultQuestionGrade
		if req.Grade != nil {
			if *req.Grade < 0 {
				nethttp.Error(w, "grade must be >= 0", nethttp.StatusBadRequest)
				return
			}
			grade = *req.Grade
		}
		q := catalog.Question{
			ID:       uuid.NewString(),
			CourseID: courseID,
			Content:  req.Content,
			Grade:    grade,
		}
		for _, ch := range req.Choices {
			q.Choices = append(q.Choices, catalog.Choice{
				ID:         uuid.NewString(),
				QuestionID: q.ID,
				Content:    ch.Content,
				IsCorrect:  ch.IsCorrect,
			})
		}
		if err := store.PutQuestion(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

// GET /courses/{courseID}/exam — the learner view of the question set.
// Correctness flags are stripped before serving.
func GetExamHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		courseID := chi.URLParam(r, "courseID")
		questions, err := store.CourseQuestions(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		view := make([]catalog.Question, 0, len(questions))
		for _, q := range questions {
			// Strip flags on a copy; the store's choices stay untouched.
			q.Choices = append([]catalog.Choice(nil), q.Choices...)
			for j := range q.Choices {
				q.Choices[j].IsCorrect = false
			}
			view = append(view, q)
		}
		_ = json.NewEncoder(w).Encode(view)
	}
}
