package repository

import (
	"context"
	"errors"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateUsername = errors.New("account with this username already exists")

// AccountRepository handles credential rows. Profile data lives in the
// per-role tables behind ProfileRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByUsername retrieves an account by its unique username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, ref_id, active, created_at, updated_at
		 FROM accounts WHERE username = $1`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.RefID, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByRef retrieves the account attached to a role profile row.
func (r *AccountRepository) GetByRef(ctx context.Context, role model.Role, refID int) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, ref_id, active, created_at, updated_at
		 FROM accounts WHERE role = $1 AND ref_id = $2`, role, refID,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.RefID, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateTx inserts a new account inside the caller's transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx pgx.Tx, a *model.Account) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, role, ref_id, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		a.Username, a.PasswordHash, a.Role, a.RefID, a.Active,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// UpdatePassword updates an account's password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// SetActiveByRef toggles the account attached to a role profile row.
func (r *AccountRepository) SetActiveByRef(ctx context.Context, role model.Role, refID int, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE accounts SET active = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE role = $2 AND ref_id = $3`,
		active, role, refID,
	)
	return err
}

// DeleteByRefTx removes the account attached to a role profile row inside
// the caller's transaction.
func (r *AccountRepository) DeleteByRefTx(ctx context.Context, tx pgx.Tx, role model.Role, refID int) error {
	_, err := tx.Exec(ctx, `DELETE FROM accounts WHERE role = $1 AND ref_id = $2`, role, refID)
	return err
}
