package repository

import (
	"context"
	"errors"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lecturerColumns = `id, code, name, department_id, birthday, email, phone, gender, active, created_at, updated_at`

// LecturerRepository handles lecturer profile data access.
type LecturerRepository struct {
	pool *pgxpool.Pool
}

// NewLecturerRepository creates a new LecturerRepository.
func NewLecturerRepository(pool *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{pool: pool}
}

// Role implements ProfileRepository.
func (r *LecturerRepository) Role() model.Role { return model.RoleLecturer }

func scanLecturer(row pgx.Row) (*model.Profile, error) {
	p := &model.Profile{Role: model.RoleLecturer}
	var departmentID int
	err := row.Scan(&p.ID, &p.Code, &p.Name, &departmentID, &p.Birthday, &p.Email, &p.Phone,
		&p.Gender, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.DepartmentID = &departmentID
	return p, nil
}

// GetByID retrieves a lecturer by ID.
func (r *LecturerRepository) GetByID(ctx context.Context, id int) (*model.Profile, error) {
	return scanLecturer(r.pool.QueryRow(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers WHERE id = $1`, id))
}

// ListPaginated retrieves lecturers ordered by name.
func (r *LecturerRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lecturers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanLecturer(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}

// CreateTx inserts a new lecturer inside the caller's transaction.
func (r *LecturerRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Profile) error {
	departmentID := 0
	if p.DepartmentID != nil {
		departmentID = *p.DepartmentID
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO lecturers (code, name, department_id, birthday, email, phone, gender, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.Code, p.Name, departmentID, p.Birthday, p.Email, p.Phone, p.Gender, p.Active,
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

// Update modifies a lecturer's profile.
func (r *LecturerRepository) Update(ctx context.Context, p *model.Profile) error {
	departmentID := 0
	if p.DepartmentID != nil {
		departmentID = *p.DepartmentID
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE lecturers
		 SET code = $1, name = $2, department_id = $3, birthday = $4, email = $5,
		     phone = $6, gender = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		p.Code, p.Name, departmentID, p.Birthday, p.Email, p.Phone, p.Gender, p.ID,
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

// SetActive toggles a lecturer's active flag.
func (r *LecturerRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lecturers SET active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		active, id,
	)
	return err
}

// DeleteTx removes a lecturer inside the caller's transaction.
func (r *LecturerRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM lecturers WHERE id = $1`, id)
	return err
}
