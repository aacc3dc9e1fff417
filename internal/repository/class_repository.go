package repository

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class by ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, department_id, lecturer_id, created_at, updated_at
		 FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.DepartmentID, &c.LecturerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes, optionally filtered by department.
func (r *ClassRepository) List(ctx context.Context, departmentID *int) ([]model.Class, error) {
	query := `SELECT id, name, department_id, lecturer_id, created_at, updated_at FROM classes`
	var args []interface{}
	if departmentID != nil {
		query += ` WHERE department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.DepartmentID, &c.LecturerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, department_id, lecturer_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.DepartmentID, c.LecturerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, department_id = $2, lecturer_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		c.Name, c.DepartmentID, c.LecturerID, c.ID,
	)
	return err
}

// Delete removes a class by ID. Fails on FK if students are attached.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}

// IsLecturerOf reports whether the lecturer supervises the class.
func (r *ClassRepository) IsLecturerOf(ctx context.Context, classID, lecturerID int) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1 AND lecturer_id = $2)`,
		classID, lecturerID,
	).Scan(&ok)
	return ok, err
}
