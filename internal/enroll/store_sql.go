package enroll

import (
	"context"
	"database/sql"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Create runs the existence check, the insert and the counter increment in
// one transaction. The ON CONFLICT guard on (user_id, course_id) means a
// racing transaction can never double-increment: whoever loses the race gets
// zero affected rows and reports ErrConflict.
func (s *SQLStore) Create(ctx context.Context, e Enrollment) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM courses WHERE id=$1`, e.CourseID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrCourseNotFound
		}
		return false, err
	}

	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM enrollments WHERE user_id=$1 AND course_id=$2`, e.UserID, e.CourseID).Scan(&one)
	switch {
	case err == nil:
		return false, nil // already enrolled, idempotent
	case !errors.Is(err, sql.ErrNoRows):
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO enrollments (id,user_id,course_id,mode,rating,date_enrolled)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id,course_id) DO NOTHING`,
		e.ID, e.UserID, e.CourseID, string(e.Mode), e.Rating, e.DateEnrolled)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE courses SET total_enrollment = total_enrollment + 1 WHERE id=$1`, e.CourseID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (s *SQLStore) Get(ctx context.Context, userID, courseID string) (Enrollment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,course_id,mode,rating,date_enrolled
		 FROM enrollments WHERE user_id=$1 AND course_id=$2`, userID, courseID)
	var e Enrollment
	var mode string
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &mode, &e.Rating, &e.DateEnrolled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enrollment{}, ErrNotEnrolled
		}
		return Enrollment{}, err
	}
	e.Mode = Mode(mode)
	return e, nil
}

func (s *SQLStore) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM enrollments WHERE user_id=$1 AND course_id=$2`, userID, courseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLStore) SetRating(ctx context.Context, userID, courseID string, rating float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE enrollments SET rating=$1 WHERE user_id=$2 AND course_id=$3`, rating, userID, courseID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotEnrolled
	}
	return nil
}

func (s *SQLStore) CountForCourse(ctx context.Context, courseID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM enrollments WHERE course_id=$1`, courseID).Scan(&n)
	return n, err
}
