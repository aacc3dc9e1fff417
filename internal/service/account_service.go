package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrProfileRequired is returned when a role-specific field is missing.
var ErrProfileRequired = errors.New("missing role-specific profile field")

// ErrInvalidBirthday is returned when a birthday string matches no accepted
// date layout.
var ErrInvalidBirthday = errors.New("invalid birthday")

// AccountService manages users of all three roles through the profile
// registry, so no caller ever branches on the role name to find a table.
type AccountService struct {
	pool        *pgxpool.Pool
	profiles    repository.ProfileRegistry
	accountRepo *repository.AccountRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	pool *pgxpool.Pool,
	profiles repository.ProfileRegistry,
	accountRepo *repository.AccountRepository,
	authService *AuthService,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		pool:        pool,
		profiles:    profiles,
		accountRepo: accountRepo,
		authService: authService,
		log:         log.With().Str("component", "account_service").Logger(),
	}
}

// FindByUsername retrieves the account row for a login attempt.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	return s.accountRepo.GetByUsername(ctx, username)
}

// ProfileFor loads the role profile behind an account.
func (s *AccountService) ProfileFor(ctx context.Context, a *model.Account) (*model.Profile, error) {
	repo, err := s.profiles.For(a.Role)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, a.RefID)
}

// GetUser retrieves one user's profile by role and id.
func (s *AccountService) GetUser(ctx context.Context, role model.Role, id int) (*model.Profile, error) {
	repo, err := s.profiles.For(role)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// ListUsers retrieves one role's users with pagination.
func (s *AccountService) ListUsers(ctx context.Context, role model.Role, limit, offset int) ([]model.Profile, int, error) {
	repo, err := s.profiles.For(role)
	if err != nil {
		return nil, 0, err
	}
	return repo.ListPaginated(ctx, limit, offset)
}

// CreateUser provisions a profile row and its account in one transaction.
func (s *AccountService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.Profile, error) {
	repo, err := s.profiles.For(req.Role)
	if err != nil {
		return nil, err
	}

	profile, err := profileFromCreateRequest(req)
	if err != nil {
		return nil, err
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := repo.CreateTx(ctx, tx, profile); err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		RefID:        profile.ID,
		Active:       true,
	}
	if err := s.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Str("role", string(req.Role)).
		Int("user_id", profile.ID).
		Msg("user created")

	return profile, nil
}

// UpdateUser modifies a user's profile.
func (s *AccountService) UpdateUser(ctx context.Context, role model.Role, id int, req *model.UpdateUserRequest) (*model.Profile, error) {
	repo, err := s.profiles.For(role)
	if err != nil {
		return nil, err
	}

	profile, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	profile.Code = req.Code
	profile.Name = req.Name
	profile.Email = req.Email
	profile.Phone = req.Phone
	profile.Gender = req.Gender
	if birthday != nil {
		profile.Birthday = birthday
	}
	if req.ClassID != 0 {
		profile.ClassID = &req.ClassID
	}
	profile.IsMonitor = req.IsMonitor
	if req.DepartmentID != 0 {
		profile.DepartmentID = &req.DepartmentID
	}

	if err := repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SelfUpdate applies the contact fields a user may change on their own profile.
func (s *AccountService) SelfUpdate(ctx context.Context, role model.Role, id int, req *model.SelfUpdateRequest) (*model.Profile, error) {
	repo, err := s.profiles.For(role)
	if err != nil {
		return nil, err
	}

	profile, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		profile.Email = req.Email
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}

	if err := repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetActive toggles both the profile and its account.
func (s *AccountService) SetActive(ctx context.Context, role model.Role, id int, active bool) error {
	repo, err := s.profiles.For(role)
	if err != nil {
		return err
	}
	if err := repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	return s.accountRepo.SetActiveByRef(ctx, role, id, active)
}

// DeleteUser removes a user's account and profile in one transaction.
func (s *AccountService) DeleteUser(ctx context.Context, role model.Role, id int) error {
	repo, err := s.profiles.For(role)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.accountRepo.DeleteByRefTx(ctx, tx, role, id); err != nil {
		return err
	}
	if err := repo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ChangePassword verifies the old password before storing the new hash.
func (s *AccountService) ChangePassword(ctx context.Context, role model.Role, id int, oldPassword, newPassword string) error {
	account, err := s.accountRepo.GetByRef(ctx, role, id)
	if err != nil {
		return err
	}
	if err := s.authService.CheckPassword(account.PasswordHash, oldPassword); err != nil {
		return err
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accountRepo.UpdatePassword(ctx, account.ID, hash)
}

// profileFromCreateRequest validates role-specific fields and assembles the
// profile row to insert.
func profileFromCreateRequest(req *model.CreateUserRequest) (*model.Profile, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Role:     req.Role,
		Code:     req.Code,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Birthday: birthday,
		Active:   true,
	}

	switch req.Role {
	case model.RoleStudent:
		if req.ClassID == 0 {
			return nil, fmt.Errorf("%w: class_id", ErrProfileRequired)
		}
		if req.Code == "" {
			return nil, fmt.Errorf("%w: code", ErrProfileRequired)
		}
		profile.ClassID = &req.ClassID
		profile.IsMonitor = req.IsMonitor
	case model.RoleLecturer:
		if req.DepartmentID == 0 {
			return nil, fmt.Errorf("%w: department_id", ErrProfileRequired)
		}
		if req.Code == "" {
			return nil, fmt.Errorf("%w: code", ErrProfileRequired)
		}
		profile.DepartmentID = &req.DepartmentID
	case model.RoleAdmin:
		// Admins carry no role-specific fields.
	default:
		return nil, repository.ErrUnknownRole
	}

	return profile, nil
}

// parseBirthday accepts the dd/mm/yyyy form used by the import sheets and
// the ISO date form used by the frontend. Empty input yields nil.
func parseBirthday(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidBirthday, raw)
}
