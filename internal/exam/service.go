package exam

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub-lms/internal/catalog"
	"github.com/learnhub/learnhub-lms/internal/enroll"
	"github.com/learnhub/learnhub-lms/internal/grading"
	syncx "github.com/learnhub/learnhub-lms/internal/sync"
)

// Service is the exam workflow: record a learner's answers, grade them
// against the course's current answer key.
type Service struct {
	catalog catalog.Store
	ledger  *enroll.Ledger
	store   Store
	engine  *grading.Engine
	events  syncx.Sink
	now     func() time.Time
}

type ServiceOption func(*Service)

func WithEvents(s syncx.Sink) ServiceOption { return func(svc *Service) { svc.events = s } }

func WithEngine(e *grading.Engine) ServiceOption { return func(svc *Service) { svc.engine = e } }

func WithClock(now func() time.Time) ServiceOption { return func(svc *Service) { svc.now = now } }

func NewService(cat catalog.Store, ledger *enroll.Ledger, store Store, opts ...ServiceOption) *Service {
	svc := &Service{
		catalog: cat,
		ledger:  ledger,
		store:   store,
		engine:  grading.NewEngine(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(svc)
	}
	return svc
}

// RecordSubmission captures a learner's selected choices as a new immutable
// submission. Every choice id must belong to a question of the target
// course; an out-of-scope id fails the whole call and nothing is written.
func (s *Service) RecordSubmission(ctx context.Context, learnerID, courseID string, choiceIDs []string) (string, error) {
	questions, err := s.catalog.CourseQuestions(ctx, courseID)
	if err != nil {
		return "", err
	}
	en, err := s.ledger.Get(ctx, learnerID, courseID)
	if err != nil {
		return "", err
	}

	known := map[string]struct{}{}
	for _, q := range questions {
		for _, ch := range q.Choices {
			known[ch.ID] = struct{}{}
		}
	}
	selected := dedupe(choiceIDs)
	for _, id := range selected {
		if _, ok := known[id]; !ok {
			return "", fmt.Errorf("%w: %s", ErrChoiceNotInCourse, id)
		}
	}

	sub := Submission{
		ID:           uuid.NewString(),
		EnrollmentID: en.ID,
		CourseID:     courseID,
		UserID:       learnerID,
		ChoiceIDs:    selected,
		CreatedAt:    s.now().Unix(),
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		return "", err
	}
	s.emit(ctx, syncx.TypeSubmissionRecorded, sub.ID, sub)
	return sub.ID, nil
}

// Grade scores a submission against the course's current questions and
// choices. Nothing is cached: fixing a mis-flagged choice changes the result
// of the next call.
func (s *Service) Grade(ctx context.Context, courseID, submissionID string) (grading.Result, error) {
	questions, err := s.catalog.CourseQuestions(ctx, courseID)
	if err != nil {
		return grading.Result{}, err
	}
	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return grading.Result{}, err
	}
	if sub.CourseID != courseID {
		return grading.Result{}, ErrSubmissionNotFound
	}
	return s.engine.Score(toGradingQuestions(questions), sub.ChoiceIDs), nil
}

func (s *Service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	return s.store.GetSubmission(ctx, id)
}

func toGradingQuestions(questions []catalog.Question) []grading.Question {
	out := make([]grading.Question, 0, len(questions))
	for _, q := range questions {
		gq := grading.Question{ID: q.ID, Points: q.Grade}
		for _, ch := range q.Choices {
			gq.ChoiceIDs = append(gq.ChoiceIDs, ch.ID)
			if ch.IsCorrect {
				gq.AnswerKey = append(gq.AnswerKey, ch.ID)
			}
		}
		out = append(out, gq)
	}
	return out
}

func dedupe(ids []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Service) emit(ctx context.Context, typ, key string, payload any) {
	if s.events == nil {
		return
	}
	data, _ := json.Marshal(payload)
	if err := s.events.Append(ctx, syncx.Event{Type: typ, Key: key, DataJSON: string(data)}); err != nil {
		log.Printf("eventlog append %s: %v", typ, err)
	}
}
