package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/learnhub/learnhub-lms/internal/api/http"
	"github.com/learnhub/learnhub-lms/internal/auth"
	"github.com/learnhub/learnhub-lms/internal/catalog"
	"github.com/learnhub/learnhub-lms/internal/enroll"
	"github.com/learnhub/learnhub-lms/internal/exam"
)

type env struct {
	srv  *httptest.Server
	cat  *catalog.MemoryStore
	auth *auth.AuthService
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()

	cat := catalog.NewInMemoryStore()
	if err := cat.PutCourse(ctx, catalog.Course{ID: "c1", Name: "Intro to Go"}); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	q := catalog.Question{ID: "q1", CourseID: "c1", Content: "pick", Grade: 50, Choices: []catalog.Choice{
		{ID: "a", QuestionID: "q1", IsCorrect: true},
		{ID: "b", QuestionID: "q1"},
	}}
	if err := cat.PutQuestion(ctx, q); err != nil {
		t.Fatalf("seed question: %v", err)
	}

	ledger := enroll.NewLedger(enroll.NewMemoryStore(cat))
	svc := exam.NewService(cat, ledger, exam.NewMemoryStore())
	authSvc := auth.NewAuthService("test-secret")

	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.OptionalJWT(authSvc))
		pr.Get("/courses", api.ListCoursesHandler(cat, ledger, 10))
		pr.Get("/courses/{courseID}", api.GetCourseHandler(cat, ledger))
		pr.Post("/courses/{courseID}/enroll", api.EnrollHandler(ledger))
	})
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Get("/courses/{courseID}/exam", api.GetExamHandler(cat))
		pr.Post("/courses/{courseID}/questions", api.CreateQuestionHandler(cat))
		pr.Post("/courses/{courseID}/submissions", api.SubmitExamHandler(svc))
		pr.Get("/courses/{courseID}/submissions/{submissionID}/result", api.ExamResultHandler(svc))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return env{srv: srv, cat: cat, auth: authSvc}
}

func (e env) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e env) token(t *testing.T, sub string) string {
	t.Helper()
	tok, err := e.auth.IssueJWT(sub, "learner")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func TestAnonymousEnrollIsNoOp(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "POST", "/courses/c1/enroll", "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	c, _ := e.cat.GetCourse(context.Background(), "c1")
	if c.TotalEnrollment != 0 {
		t.Fatalf("anonymous enroll bumped counter to %d", c.TotalEnrollment)
	}
}

func TestEnrollThenListShowsEnrolled(t *testing.T) {
	e := newEnv(t)
	tok := e.token(t, "u1")

	if resp := e.do(t, "POST", "/courses/c1/enroll", tok, nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("enroll status = %d", resp.StatusCode)
	}
	// Second enroll stays 204 and keeps the counter at 1.
	if resp := e.do(t, "POST", "/courses/c1/enroll", tok, nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("re-enroll status = %d", resp.StatusCode)
	}

	resp := e.do(t, "GET", "/courses", tok, nil)
	var courses []catalog.Course
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(courses) != 1 || !courses[0].IsEnrolled || courses[0].TotalEnrollment != 1 {
		t.Fatalf("unexpected listing: %+v", courses)
	}

	// An anonymous viewer sees the same course without the enrolled flag.
	resp = e.do(t, "GET", "/courses", "", nil)
	courses = nil
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if courses[0].IsEnrolled {
		t.Fatal("anonymous viewer marked enrolled")
	}
}

func TestSubmitRequiresEnrollment(t *testing.T) {
	e := newEnv(t)
	tok := e.token(t, "u1")

	resp := e.do(t, "POST", "/courses/c1/submissions", tok, map[string]any{"choice_ids": []string{"a"}})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestSubmitAndFetchResult(t *testing.T) {
	e := newEnv(t)
	tok := e.token(t, "u1")

	e.do(t, "POST", "/courses/c1/enroll", tok, nil)

	resp := e.do(t, "POST", "/courses/c1/submissions", tok, map[string]any{"choice_ids": []string{"a"}})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201", resp.StatusCode)
	}
	var out struct {
		SubmissionID string `json:"submission_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp = e.do(t, "GET", "/courses/c1/submissions/"+out.SubmissionID+"/result", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("result status = %d", resp.StatusCode)
	}
	var res struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Total != 50 {
		t.Fatalf("total = %d, want 50", res.Total)
	}
}

func TestCreateQuestionDefaultsGrade(t *testing.T) {
	e := newEnv(t)
	tok := e.token(t, "i1")

	resp := e.do(t, "POST", "/courses/c1/questions", tok, map[string]any{
		"content": "pick one",
		"choices": []map[string]any{{"content": "yes", "is_correct": true}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var q catalog.Question
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Grade != 50 {
		t.Fatalf("grade = %d, want default 50", q.Grade)
	}

	// An explicit zero is honored, not treated as omitted.
	resp = e.do(t, "POST", "/courses/c1/questions", tok, map[string]any{
		"content": "ungraded",
		"grade":   0,
		"choices": []map[string]any{{"content": "ok"}},
	})
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Grade != 0 {
		t.Fatalf("grade = %d, want 0", q.Grade)
	}

	// Negative grades are rejected.
	resp = e.do(t, "POST", "/courses/c1/questions", tok, map[string]any{
		"content": "bad",
		"grade":   -1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExamViewKeepsAnswerKeyIntact(t *testing.T) {
	e := newEnv(t)
	tok := e.token(t, "u1")
	e.do(t, "POST", "/courses/c1/enroll", tok, nil)

	resp := e.do(t, "POST", "/courses/c1/submissions", tok, map[string]any{"choice_ids": []string{"a"}})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201", resp.StatusCode)
	}
	var out struct {
		SubmissionID string `json:"submission_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Serving the learner view must not disturb stored correctness flags.
	resp = e.do(t, "GET", "/courses/c1/exam", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("exam view status = %d", resp.StatusCode)
	}
	var view []catalog.Question
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	for _, q := range view {
		for _, ch := range q.Choices {
			if ch.IsCorrect {
				t.Fatalf("choice %s leaked correctness flag", ch.ID)
			}
		}
	}

	resp = e.do(t, "GET", "/courses/c1/submissions/"+out.SubmissionID+"/result", tok, nil)
	var res struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Total != 50 {
		t.Fatalf("total after exam view = %d, want 50", res.Total)
	}
}

func TestSubmitForeignChoiceRejected(t *testing.T) {
	e := newEnv(t)
	tok := e.token(t, "u1")
	e.do(t, "POST", "/courses/c1/enroll", tok, nil)

	resp := e.do(t, "POST", "/courses/c1/submissions", tok, map[string]any{"choice_ids": []string{"a", "zzz"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}
