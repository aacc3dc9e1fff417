package repository

import (
	"context"
	"errors"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// ErrUnknownRole is returned when a role has no registered profile repository.
var ErrUnknownRole = errors.New("unknown role")

// ProfileRepository is the per-role data access behind user management.
// Each role's profile table (students, lecturers, admins) gets one
// implementation; callers select the implementation once at the request
// boundary instead of branching on the role name per query.
type ProfileRepository interface {
	Role() model.Role
	GetByID(ctx context.Context, id int) (*model.Profile, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]model.Profile, int, error)
	// CreateTx inserts the profile row inside the caller's transaction so a
	// profile and its account commit together.
	CreateTx(ctx context.Context, tx pgx.Tx, p *model.Profile) error
	Update(ctx context.Context, p *model.Profile) error
	SetActive(ctx context.Context, id int, active bool) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id int) error
}

// ProfileRegistry maps roles to their repository implementation.
type ProfileRegistry map[model.Role]ProfileRepository

// NewProfileRegistry builds a registry from the given implementations.
func NewProfileRegistry(repos ...ProfileRepository) ProfileRegistry {
	reg := make(ProfileRegistry, len(repos))
	for _, r := range repos {
		reg[r.Role()] = r
	}
	return reg
}

// For returns the repository for a role, or ErrUnknownRole.
func (reg ProfileRegistry) For(role model.Role) (ProfileRepository, error) {
	repo, ok := reg[role]
	if !ok {
		return nil, ErrUnknownRole
	}
	return repo, nil
}
