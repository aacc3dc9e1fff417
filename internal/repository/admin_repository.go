package repository

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adminColumns = `id, name, email, phone, active, created_at, updated_at`

// AdminRepository handles administrator profile data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Role implements ProfileRepository.
func (r *AdminRepository) Role() model.Role { return model.RoleAdmin }

func scanAdmin(row pgx.Row) (*model.Profile, error) {
	p := &model.Profile{Role: model.RoleAdmin}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id int) (*model.Profile, error) {
	return scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
}

// ListPaginated retrieves admins ordered by name.
func (r *AdminRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanAdmin(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}

// CreateTx inserts a new admin inside the caller's transaction.
func (r *AdminRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Profile) error {
	return tx.QueryRow(ctx,
		`INSERT INTO admins (name, email, phone, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Email, p.Phone, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update modifies an admin's profile.
func (r *AdminRepository) Update(ctx context.Context, p *model.Profile) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET name = $1, email = $2, phone = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		p.Name, p.Email, p.Phone, p.ID,
	)
	return err
}

// SetActive toggles an admin's active flag.
func (r *AdminRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		active, id,
	)
	return err
}

// DeleteTx removes an admin inside the caller's transaction.
func (r *AdminRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	return err
}
