package repository

import (
	"context"
	"errors"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateCode = errors.New("profile with this code already exists")

const studentColumns = `id, code, name, class_id, birthday, email, phone, gender, is_monitor, active, created_at, updated_at`

// StudentRepository handles student profile data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Role implements ProfileRepository.
func (r *StudentRepository) Role() model.Role { return model.RoleStudent }

func scanStudent(row pgx.Row) (*model.Profile, error) {
	p := &model.Profile{Role: model.RoleStudent}
	var classID int
	err := row.Scan(&p.ID, &p.Code, &p.Name, &classID, &p.Birthday, &p.Email, &p.Phone,
		&p.Gender, &p.IsMonitor, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ClassID = &classID
	return p, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Profile, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// ListPaginated retrieves students ordered by name.
func (r *StudentRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}

// ListByClass retrieves all students of a class ordered by name.
func (r *StudentRepository) ListByClass(ctx context.Context, classID int) ([]model.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE class_id = $1 ORDER BY name`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// CreateTx inserts a new student inside the caller's transaction.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Profile) error {
	classID := 0
	if p.ClassID != nil {
		classID = *p.ClassID
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO students (code, name, class_id, birthday, email, phone, gender, is_monitor, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.Code, p.Name, classID, p.Birthday, p.Email, p.Phone, p.Gender, p.IsMonitor, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

// Update modifies a student's profile.
func (r *StudentRepository) Update(ctx context.Context, p *model.Profile) error {
	classID := 0
	if p.ClassID != nil {
		classID = *p.ClassID
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET code = $1, name = $2, class_id = $3, birthday = $4, email = $5,
		     phone = $6, gender = $7, is_monitor = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		p.Code, p.Name, classID, p.Birthday, p.Email, p.Phone, p.Gender, p.IsMonitor, p.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

// SetActive toggles a student's active flag.
func (r *StudentRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		active, id,
	)
	return err
}

// DeleteTx removes a student inside the caller's transaction.
func (r *StudentRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}
