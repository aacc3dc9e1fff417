package repository

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

const semesterColumns = `id, name, school_year, student_open, student_close, review_open, review_close, active, created_at, updated_at`

// SemesterRepository handles semester data access.
type SemesterRepository struct {
	pool *pgxpool.Pool
}

// NewSemesterRepository creates a new SemesterRepository.
func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{pool: pool}
}

func (r *SemesterRepository) scanRow(row interface{ Scan(...interface{}) error }) (*model.Semester, error) {
	s := &model.Semester{}
	err := row.Scan(&s.ID, &s.Name, &s.SchoolYear, &s.StudentOpen, &s.StudentClose,
		&s.ReviewOpen, &s.ReviewClose, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a semester by ID.
func (r *SemesterRepository) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	return r.scanRow(r.pool.QueryRow(ctx,
		`SELECT `+semesterColumns+` FROM semesters WHERE id = $1`, id))
}

// List retrieves all semesters, most recent first.
func (r *SemesterRepository) List(ctx context.Context) ([]model.Semester, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+semesterColumns+` FROM semesters ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []model.Semester
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, *s)
	}
	return semesters, rows.Err()
}

// MapByIDs retrieves the semesters with the given IDs keyed by ID.
// Missing IDs are simply absent from the map.
func (r *SemesterRepository) MapByIDs(ctx context.Context, ids []int) (map[int]model.Semester, error) {
	result := make(map[int]model.Semester, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+semesterColumns+` FROM semesters WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result[s.ID] = *s
	}
	return result, rows.Err()
}

// GetActive retrieves the most recent active semester.
func (r *SemesterRepository) GetActive(ctx context.Context) (*model.Semester, error) {
	return r.scanRow(r.pool.QueryRow(ctx,
		`SELECT `+semesterColumns+` FROM semesters WHERE active ORDER BY id DESC LIMIT 1`))
}

// Create inserts a new semester.
func (r *SemesterRepository) Create(ctx context.Context, s *model.Semester) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO semesters (name, school_year, student_open, student_close, review_open, review_close, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.SchoolYear, s.StudentOpen, s.StudentClose, s.ReviewOpen, s.ReviewClose, s.Active,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing semester.
func (r *SemesterRepository) Update(ctx context.Context, s *model.Semester) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE semesters
		 SET name = $1, school_year = $2, student_open = $3, student_close = $4,
		     review_open = $5, review_close = $6, active = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		s.Name, s.SchoolYear, s.StudentOpen, s.StudentClose, s.ReviewOpen, s.ReviewClose, s.Active, s.ID,
	)
	return err
}

// Delete removes a semester by ID. Fails on FK if submissions exist.
func (r *SemesterRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	return err
}
