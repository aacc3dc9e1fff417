package repository

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoleRepository handles the role→permission mapping. The mapping is the
// source of truth for authorization; token permission lists are advisory.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetPermissionsByRole retrieves all permission codes for a role name.
func (r *RoleRepository) GetPermissionsByRole(ctx context.Context, role string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.code
		 FROM permissions p
		 JOIN role_permissions rp ON p.id = rp.permission_id
		 JOIN roles ro ON ro.id = rp.role_id
		 WHERE ro.name = $1
		 ORDER BY p.code`, role,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		permissions = append(permissions, code)
	}
	return permissions, rows.Err()
}

// ListRolesWithPermissions retrieves all roles with their permission codes.
func (r *RoleRepository) ListRolesWithPermissions(ctx context.Context) ([]model.RoleWithPermissions, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.RoleWithPermissions
	for rows.Next() {
		var role model.RoleEntity
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, err
		}

		// The number of roles is tiny; a query per role is fine.
		permissions, err := r.GetPermissionsByRole(ctx, role.Name)
		if err != nil {
			return nil, err
		}

		roles = append(roles, model.RoleWithPermissions{
			RoleEntity:  &role,
			Permissions: permissions,
		})
	}

	return roles, rows.Err()
}

// ReplacePermissions swaps a role's permission set for the given codes.
func (r *RoleRepository) ReplacePermissions(ctx context.Context, roleID int, permissionCodes []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return err
	}

	if len(permissionCodes) > 0 {
		rows, err := tx.Query(ctx, `SELECT id FROM permissions WHERE code = ANY($1)`, permissionCodes)
		if err != nil {
			return err
		}

		var permissionIDs []int
		for rows.Next() {
			var pid int
			if err := rows.Scan(&pid); err != nil {
				rows.Close()
				return err
			}
			permissionIDs = append(permissionIDs, pid)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if len(permissionIDs) > 0 {
			_, err = tx.CopyFrom(
				ctx,
				pgx.Identifier{"role_permissions"},
				[]string{"role_id", "permission_id"},
				pgx.CopyFromSlice(len(permissionIDs), func(i int) ([]interface{}, error) {
					return []interface{}{roleID, permissionIDs[i]}, nil
				}),
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// ListPermissions retrieves all known permission codes.
func (r *RoleRepository) ListPermissions(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT code FROM permissions ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
