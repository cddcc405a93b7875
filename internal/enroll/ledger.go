package enroll

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	syncx "github.com/learnhub/learnhub-lms/internal/sync"
)

// Ledger decides enrollment eligibility and keeps the course counter
// consistent. All mutation goes through the store as a single atomic unit.
type Ledger struct {
	store  Store
	events syncx.Sink
	now    func() time.Time
}

type LedgerOption func(*Ledger)

func WithEvents(s syncx.Sink) LedgerOption { return func(l *Ledger) { l.events = s } }

// WithClock overrides time for tests.
func WithClock(now func() time.Time) LedgerOption { return func(l *Ledger) { l.now = now } }

func NewLedger(store Store, opts ...LedgerOption) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Enroll creates an honor-mode enrollment dated today and bumps the course
// counter by exactly one. Calling it again for the same pair is a no-op.
func (l *Ledger) Enroll(ctx context.Context, learnerID, courseID string) error {
	if learnerID == "" {
		return ErrUnauthenticated
	}
	e := Enrollment{
		ID:           uuid.NewString(),
		UserID:       learnerID,
		CourseID:     courseID,
		Mode:         ModeHonor,
		Rating:       5.0,
		DateEnrolled: l.now().Unix(),
	}
	created, err := l.store.Create(ctx, e)
	if err != nil {
		return err
	}
	if created {
		l.emit(ctx, syncx.TypeEnrollmentCreated, e.ID, e)
	}
	return nil
}

func (l *Ledger) IsEnrolled(ctx context.Context, learnerID, courseID string) (bool, error) {
	if learnerID == "" {
		return false, nil
	}
	return l.store.IsEnrolled(ctx, learnerID, courseID)
}

func (l *Ledger) Get(ctx context.Context, learnerID, courseID string) (Enrollment, error) {
	return l.store.Get(ctx, learnerID, courseID)
}

// Rate records the learner's course rating on their enrollment.
func (l *Ledger) Rate(ctx context.Context, learnerID, courseID string, rating float64) error {
	if learnerID == "" {
		return ErrUnauthenticated
	}
	if rating < 0 || rating > 5 {
		return ErrInvalidRating
	}
	if err := l.store.SetRating(ctx, learnerID, courseID, rating); err != nil {
		return err
	}
	l.emit(ctx, syncx.TypeCourseRated, learnerID+"|"+courseID, map[string]any{
		"user_id": learnerID, "course_id": courseID, "rating": rating,
	})
	return nil
}

// emit is best-effort: a failed audit append never fails the operation.
func (l *Ledger) emit(ctx context.Context, typ, key string, payload any) {
	if l.events == nil {
		return
	}
	data, _ := json.Marshal(payload)
	if err := l.events.Append(ctx, syncx.Event{Type: typ, Key: key, DataJSON: string(data)}); err != nil {
		log.Printf("eventlog append %s: %v", typ, err)
	}
}
