package model

import "time"

// Role identifies which profile table an account points into.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}

// RoleEntity is the stored RBAC role row backing the role→permission mapping.
type RoleEntity struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleWithPermissions extends RoleEntity to include its permission codes.
type RoleWithPermissions struct {
	*RoleEntity
	Permissions []string `json:"permissions"`
}
