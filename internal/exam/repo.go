package exam

import "context"

// Store persists submissions. Append-only: nothing updates or deletes a
// submission once written.
type Store interface {
	CreateSubmission(ctx context.Context, s Submission) error
	// GetSubmission returns the submission joined with its enrollment's
	// course and user, so callers can verify ownership in one read.
	GetSubmission(ctx context.Context, id string) (Submission, error)
}
