package service

import (
	"context"
	"fmt"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// RoleService manages the role-permission mapping. Every change flushes the
// permission cache so checks pick it up without restart.
type RoleService struct {
	roleRepo    *repository.RoleRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo *repository.RoleRepository, authService *AuthService, log zerolog.Logger) *RoleService {
	return &RoleService{
		roleRepo:    roleRepo,
		authService: authService,
		log:         log.With().Str("component", "role_service").Logger(),
	}
}

// List retrieves every role with its permission codes.
func (s *RoleService) List(ctx context.Context) ([]model.RoleWithPermissions, error) {
	return s.roleRepo.ListRolesWithPermissions(ctx)
}

// ListPermissions retrieves the full permission catalog.
func (s *RoleService) ListPermissions(ctx context.Context) ([]string, error) {
	return s.roleRepo.ListPermissions(ctx)
}

// ReplacePermissions swaps a role's permission set and invalidates its cache.
func (s *RoleService) ReplacePermissions(ctx context.Context, roleID int, codes []string) error {
	known := map[model.Permission]bool{}
	for _, p := range model.AllPermissions {
		known[p] = true
	}
	for _, code := range codes {
		if !known[model.Permission(code)] {
			return fmt.Errorf("%w: %q", ErrUnknownPermission, code)
		}
	}

	roles, err := s.roleRepo.ListRolesWithPermissions(ctx)
	if err != nil {
		return err
	}
	var role *model.RoleWithPermissions
	for i := range roles {
		if roles[i].ID == roleID {
			role = &roles[i]
			break
		}
	}
	if role == nil {
		return pgx.ErrNoRows
	}

	if err := s.roleRepo.ReplacePermissions(ctx, role.ID, codes); err != nil {
		return err
	}
	if err := s.authService.InvalidatePermissionCache(ctx, model.Role(role.Name)); err != nil {
		s.log.Warn().Err(err).Str("role", role.Name).Msg("failed to flush permission cache")
	}
	s.log.Info().Str("role", role.Name).Int("permissions", len(codes)).Msg("role permissions replaced")
	return nil
}
