package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EvaluationRepository handles submission-line data access. One row holds
// one distinct (student, semester, answer) selection plus its repeat amount.
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository creates a new EvaluationRepository.
func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

// Replace atomically swaps the full submission-line set for one
// (student, semester) pair. Either every prior line is deleted and every new
// line inserted, or nothing changes.
//
// The advisory lock serializes concurrent resubmissions for the same pair so
// the delete of one cannot interleave with the insert of another; the lock
// is released at commit/rollback.
func (r *EvaluationRepository) Replace(ctx context.Context, studentID, semesterID int, details []model.EvaluationDetail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, $2)`, int32(studentID), int32(semesterID)); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM self_answers WHERE student_id = $1 AND semester_id = $2`,
		studentID, semesterID); err != nil {
		return fmt.Errorf("delete prior lines: %w", err)
	}

	if len(details) > 0 {
		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"self_answers"},
			[]string{"student_id", "semester_id", "answer_id", "amount"},
			pgx.CopyFromSlice(len(details), func(i int) ([]interface{}, error) {
				amount := details[i].Amount
				if amount < 1 {
					amount = 1
				}
				return []interface{}{studentID, semesterID, details[i].AnswerID, amount}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("insert lines: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListLines retrieves the raw submission lines for one (student, semester).
func (r *EvaluationRepository) ListLines(ctx context.Context, studentID, semesterID int) ([]model.EvaluationLine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT answer_id, amount, created_at
		 FROM self_answers
		 WHERE student_id = $1 AND semester_id = $2
		 ORDER BY answer_id`, studentID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.EvaluationLine
	for rows.Next() {
		var l model.EvaluationLine
		if err := rows.Scan(&l.AnswerID, &l.Amount, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// StudentLine is one stored line joined with its current answer score.
// Score is nil when the referenced answer no longer exists.
type StudentLine struct {
	SemesterID int
	AnswerID   int
	Amount     int
	Score      *int
	CreatedAt  time.Time
}

// ListStudentLines retrieves every submission line of one student across all
// semesters, most recent semester first.
func (r *EvaluationRepository) ListStudentLines(ctx context.Context, studentID int) ([]StudentLine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sa.semester_id, sa.answer_id, sa.amount, a.score, sa.created_at
		 FROM self_answers sa
		 LEFT JOIN answers a ON a.id = sa.answer_id
		 WHERE sa.student_id = $1
		 ORDER BY sa.semester_id DESC, sa.answer_id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []StudentLine
	for rows.Next() {
		var l StudentLine
		if err := rows.Scan(&l.SemesterID, &l.AnswerID, &l.Amount, &l.Score, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ClassLine is one stored line of one class member in one semester.
type ClassLine struct {
	StudentID   int
	StudentCode string
	StudentName string
	AnswerID    int
	Amount      int
	Score       *int
	CreatedAt   time.Time
}

// ListClassLines retrieves every submission line of one class's students
// within one semester.
func (r *EvaluationRepository) ListClassLines(ctx context.Context, classID, semesterID int) ([]ClassLine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.code, s.name, sa.answer_id, sa.amount, a.score, sa.created_at
		 FROM self_answers sa
		 JOIN students s ON s.id = sa.student_id
		 LEFT JOIN answers a ON a.id = sa.answer_id
		 WHERE s.class_id = $1 AND sa.semester_id = $2
		 ORDER BY s.name, sa.answer_id`, classID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []ClassLine
	for rows.Next() {
		var l ClassLine
		if err := rows.Scan(&l.StudentID, &l.StudentCode, &l.StudentName, &l.AnswerID, &l.Amount, &l.Score, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// SemesterLine is one stored line of one semester, across all classes.
type SemesterLine struct {
	StudentID int
	AnswerID  int
	Amount    int
	Score     *int
}

// ListSemesterLines retrieves every submission line of one semester. Used by
// the dashboard to build the score distribution.
func (r *EvaluationRepository) ListSemesterLines(ctx context.Context, semesterID int) ([]SemesterLine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sa.student_id, sa.answer_id, sa.amount, a.score
		 FROM self_answers sa
		 LEFT JOIN answers a ON a.id = sa.answer_id
		 WHERE sa.semester_id = $1`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []SemesterLine
	for rows.Next() {
		var l SemesterLine
		if err := rows.Scan(&l.StudentID, &l.AnswerID, &l.Amount, &l.Score); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// CountBySemester counts submission lines grouped per semester, used by the
// dashboard.
func (r *EvaluationRepository) CountBySemester(ctx context.Context, semesterID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT student_id) FROM self_answers WHERE semester_id = $1`,
		semesterID).Scan(&count)
	return count, err
}
