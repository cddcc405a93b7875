package grading

// Question is the minimal view of a catalog question needed for scoring.
type Question struct {
	ID        string
	Points    int
	ChoiceIDs []string // every choice belonging to the question
	AnswerKey []string // choices flagged correct
}

// QuestionResult is the outcome for a single question.
type QuestionResult struct {
	QuestionID string   `json:"question_id"`
	Points     int      `json:"points"`     // awarded
	MaxPoints  int      `json:"max_points"` // the question's grade value
	Correct    bool     `json:"correct"`
	Selected   []string `json:"selected,omitempty"` // selection restricted to this question
}

// Result is a full graded breakdown. Total is always the sum of the
// per-question awarded points.
type Result struct {
	Total     int              `json:"total"`
	MaxTotal  int              `json:"max_total"`
	Questions []QuestionResult `json:"questions"`
}

// Policy decides how many points a single question earns given the learner's
// selection restricted to that question.
type Policy interface {
	Score(q Question, selected map[string]struct{}) int
}

// ExactMatch awards full points iff the selected set equals the answer key
// exactly. No partial credit: an extra wrong choice or a missing correct one
// yields zero. A question with an empty answer key and an empty selection
// scores full points (empty set equals empty set).
type ExactMatch struct{}

func (ExactMatch) Score(q Question, selected map[string]struct{}) int {
	if setEqual(toSet(q.AnswerKey), selected) {
		return q.Points
	}
	return 0
}

type Engine struct {
	policy Policy
}

type Option func(*Engine)

func WithPolicy(p Policy) Option { return func(e *Engine) { e.policy = p } }

// NewEngine builds a grading engine, exact-match by default.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{policy: ExactMatch{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Score grades a full submission against the current answer key. Selected
// choices that belong to no question are ignored here; the submission
// recorder rejects them before anything is persisted.
func (e *Engine) Score(questions []Question, selectedChoiceIDs []string) Result {
	selected := toSet(selectedChoiceIDs)
	res := Result{Questions: make([]QuestionResult, 0, len(questions))}
	for _, q := range questions {
		sub := restrict(selected, q.ChoiceIDs)
		pts := e.policy.Score(q, sub)
		res.Total += pts
		res.MaxTotal += q.Points
		res.Questions = append(res.Questions, QuestionResult{
			QuestionID: q.ID,
			Points:     pts,
			MaxPoints:  q.Points,
			Correct:    pts == q.Points,
			Selected:   keys(sub),
		})
	}
	return res
}

// restrict returns the subset of selected that belongs to the given question.
func restrict(selected map[string]struct{}, choiceIDs []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, id := range choiceIDs {
		if _, ok := selected[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func keys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
