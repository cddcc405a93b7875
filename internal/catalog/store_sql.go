package catalog

import (
	"context"
	"database/sql"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutCourse(ctx context.Context, c Course) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO courses (id,name,description,pub_date,total_enrollment)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description, pub_date=EXCLUDED.pub_date`,
		c.ID, c.Name, c.Description, c.PubDate, c.TotalEnrollment)
	return err
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,description,pub_date,total_enrollment FROM courses WHERE id=$1`, id)
	var c Course
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.PubDate, &c.TotalEnrollment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,course_id,title,ord,content FROM lessons WHERE course_id=$1 ORDER BY ord`, id)
	if err != nil {
		return Course{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Order, &l.Content); err != nil {
			return Course{}, err
		}
		c.Lessons = append(c.Lessons, l)
	}
	return c, rows.Err()
}

func (s *SQLStore) ListCourses(ctx context.Context, limit int) ([]Course, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,description,pub_date,total_enrollment
		FROM courses ORDER BY total_enrollment DESC, name LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.PubDate, &c.TotalEnrollment); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutLesson(ctx context.Context, l Lesson) error {
	if err := s.courseExists(ctx, l.CourseID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO lessons (id,course_id,title,ord,content)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, ord=EXCLUDED.ord, content=EXCLUDED.content`,
		l.ID, l.CourseID, l.Title, l.Order, l.Content)
	return err
}

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) error {
	if err := s.courseExists(ctx, q.CourseID); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO questions (id,course_id,content,grade)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET content=EXCLUDED.content, grade=EXCLUDED.grade`,
		q.ID, q.CourseID, q.Content, q.Grade); err != nil {
		return err
	}
	for _, ch := range q.Choices {
		if _, err := tx.ExecContext(ctx, `INSERT INTO choices (id,question_id,content,is_correct)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO UPDATE SET content=EXCLUDED.content, is_correct=EXCLUDED.is_correct`,
			ch.ID, q.ID, ch.Content, ch.IsCorrect); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) CourseQuestions(ctx context.Context, courseID string) ([]Question, error) {
	if err := s.courseExists(ctx, courseID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,course_id,content,grade FROM questions WHERE course_id=$1 ORDER BY id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var qs []Question
	byID := map[string]int{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Content, &q.Grade); err != nil {
			return nil, err
		}
		byID[q.ID] = len(qs)
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `SELECT c.id,c.question_id,c.content,c.is_correct
		FROM choices c JOIN questions q ON q.id=c.question_id
		WHERE q.course_id=$1 ORDER BY c.id`, courseID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var ch Choice
		if err := crows.Scan(&ch.ID, &ch.QuestionID, &ch.Content, &ch.IsCorrect); err != nil {
			return nil, err
		}
		if i, ok := byID[ch.QuestionID]; ok {
			qs[i].Choices = append(qs[i].Choices, ch)
		}
	}
	return qs, crows.Err()
}

func (s *SQLStore) courseExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM courses WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
