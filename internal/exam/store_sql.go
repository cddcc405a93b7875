package exam

import (
	"context"
	"database/sql"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) CreateSubmission(ctx context.Context, sub Submission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO submissions (id,enrollment_id,created_at) VALUES ($1,$2,$3)`,
		sub.ID, sub.EnrollmentID, sub.CreatedAt); err != nil {
		return err
	}
	for _, choiceID := range sub.ChoiceIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO submission_choices (submission_id,choice_id) VALUES ($1,$2)
			 ON CONFLICT (submission_id,choice_id) DO NOTHING`,
			sub.ID, choiceID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.enrollment_id, e.course_id, e.user_id, s.created_at
		 FROM submissions s JOIN enrollments e ON e.id = s.enrollment_id
		 WHERE s.id=$1`, id)
	var sub Submission
	if err := row.Scan(&sub.ID, &sub.EnrollmentID, &sub.CourseID, &sub.UserID, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT choice_id FROM submission_choices WHERE submission_id=$1 ORDER BY choice_id`, id)
	if err != nil {
		return Submission{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var choiceID string
		if err := rows.Scan(&choiceID); err != nil {
			return Submission{}, err
		}
		sub.ChoiceIDs = append(sub.ChoiceIDs, choiceID)
	}
	return sub, rows.Err()
}
