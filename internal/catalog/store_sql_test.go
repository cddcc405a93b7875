package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/learnhub/learnhub-lms/internal/catalog"
	"github.com/learnhub/learnhub-lms/internal/db"
)

func openStore(t *testing.T, name string) *catalog.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return catalog.NewSQLStore(dbh)
}

func TestCourseRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, "catalog_course.db")

	c := catalog.Course{ID: "c1", Name: "Intro to Go", Description: "basics", PubDate: 1700000000}
	if err := store.PutCourse(ctx, c); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutLesson(ctx, catalog.Lesson{ID: "l1", CourseID: "c1", Title: "Hello", Order: 1}); err != nil {
		t.Fatalf("put lesson: %v", err)
	}

	got, err := store.GetCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Intro to Go" || len(got.Lessons) != 1 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	if _, err := store.GetCourse(ctx, "nope"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("missing course: err = %v, want ErrNotFound", err)
	}
	if err := store.PutLesson(ctx, catalog.Lesson{ID: "l2", CourseID: "nope", Title: "x"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("lesson for missing course: err = %v, want ErrNotFound", err)
	}
}

func TestListCoursesOrder(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, "catalog_list.db")

	for _, c := range []catalog.Course{
		{ID: "c1", Name: "A", TotalEnrollment: 3},
		{ID: "c2", Name: "B", TotalEnrollment: 9},
		{ID: "c3", Name: "C", TotalEnrollment: 1},
	} {
		if err := store.PutCourse(ctx, c); err != nil {
			t.Fatalf("put %s: %v", c.ID, err)
		}
	}
	out, err := store.ListCourses(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].ID != "c2" || out[1].ID != "c1" {
		t.Fatalf("ordering wrong: %+v", out)
	}
}

func TestQuestionsWithChoices(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, "catalog_questions.db")

	if err := store.PutCourse(ctx, catalog.Course{ID: "c1", Name: "Quiz"}); err != nil {
		t.Fatalf("put course: %v", err)
	}
	q := catalog.Question{ID: "q1", CourseID: "c1", Content: "2+2?", Grade: 50, Choices: []catalog.Choice{
		{ID: "a", Content: "4", IsCorrect: true},
		{ID: "b", Content: "5"},
	}}
	if err := store.PutQuestion(ctx, q); err != nil {
		t.Fatalf("put question: %v", err)
	}

	qs, err := store.CourseQuestions(ctx, "c1")
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 1 || len(qs[0].Choices) != 2 {
		t.Fatalf("unexpected shape: %+v", qs)
	}
	if !qs[0].Choices[0].IsCorrect || qs[0].Choices[1].IsCorrect {
		t.Fatalf("is_correct flags lost: %+v", qs[0].Choices)
	}

	if _, err := store.CourseQuestions(ctx, "nope"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("missing course: err = %v, want ErrNotFound", err)
	}
}
