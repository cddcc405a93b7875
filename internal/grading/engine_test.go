package grading_test

import (
	"testing"

	"github.com/learnhub/learnhub-lms/internal/grading"
)

func q(id string, points int, choices, key []string) grading.Question {
	return grading.Question{ID: id, Points: points, ChoiceIDs: choices, AnswerKey: key}
}

func TestExactMatch(t *testing.T) {
	eng := grading.NewEngine()
	question := q("q1", 50, []string{"a", "b", "c", "d"}, []string{"a", "b"})

	cases := []struct {
		name     string
		selected []string
		want     int
	}{
		{"all correct", []string{"a", "b"}, 50},
		{"missing one", []string{"a"}, 0},
		{"extra wrong", []string{"a", "b", "d"}, 0},
		{"all wrong", []string{"c", "d"}, 0},
		{"nothing selected", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := eng.Score([]grading.Question{question}, tc.selected)
			if res.Total != tc.want {
				t.Fatalf("total = %d, want %d", res.Total, tc.want)
			}
		})
	}
}

func TestScoreAdditivity(t *testing.T) {
	eng := grading.NewEngine()
	questions := []grading.Question{
		q("q1", 50, []string{"a", "b"}, []string{"a"}),
		q("q2", 30, []string{"c", "d"}, []string{"c"}),
		q("q3", 20, []string{"e", "f"}, []string{"f"}),
	}
	// Only q1 fully correct: q2 missed, q3 wrong pick.
	res := eng.Score(questions, []string{"a", "e"})
	if res.Total != 50 {
		t.Fatalf("total = %d, want 50", res.Total)
	}
	if res.MaxTotal != 100 {
		t.Fatalf("max total = %d, want 100", res.MaxTotal)
	}
	sum := 0
	for _, qr := range res.Questions {
		sum += qr.Points
	}
	if sum != res.Total {
		t.Fatalf("per-question sum %d != total %d", sum, res.Total)
	}
}

func TestEmptyAnswerKeyScoresOnEmptySelection(t *testing.T) {
	eng := grading.NewEngine()
	question := q("q1", 25, []string{"a", "b"}, nil)

	res := eng.Score([]grading.Question{question}, nil)
	if res.Total != 25 {
		t.Fatalf("empty==empty should score full points, got %d", res.Total)
	}

	// Selecting anything for a zero-key question forfeits it.
	res = eng.Score([]grading.Question{question}, []string{"a"})
	if res.Total != 0 {
		t.Fatalf("non-empty selection against empty key scored %d, want 0", res.Total)
	}
}

func TestSelectionRestrictedPerQuestion(t *testing.T) {
	eng := grading.NewEngine()
	questions := []grading.Question{
		q("q1", 10, []string{"a", "b"}, []string{"a"}),
		q("q2", 10, []string{"c", "d"}, []string{"c"}),
	}
	// One flat selection across both questions grades each independently.
	res := eng.Score(questions, []string{"a", "c"})
	if res.Total != 20 {
		t.Fatalf("total = %d, want 20", res.Total)
	}
	for _, qr := range res.Questions {
		if len(qr.Selected) != 1 {
			t.Fatalf("question %s selection not restricted: %v", qr.QuestionID, qr.Selected)
		}
	}
}

type halfCredit struct{}

func (halfCredit) Score(q grading.Question, selected map[string]struct{}) int {
	return q.Points / 2
}

func TestWithPolicy(t *testing.T) {
	eng := grading.NewEngine(grading.WithPolicy(halfCredit{}))
	res := eng.Score([]grading.Question{q("q1", 50, []string{"a"}, []string{"a"})}, nil)
	if res.Total != 25 {
		t.Fatalf("custom policy ignored, total = %d", res.Total)
	}
}
