package model

import "time"

// Account holds the login credentials for a user of any role. RefID points
// into the role's profile table (students, lecturers, or admins).
type Account struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	RefID        int       `json:"ref_id"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication, any role.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token       string   `json:"token"`
	Role        Role     `json:"role"`
	User        *Profile `json:"user"`
	Permissions []string `json:"permissions"`
}

// CreateUserRequest is the payload for creating a user of any role.
// Fields beyond the common block apply only to the role they belong to.
type CreateUserRequest struct {
	Role     Role   `json:"role" binding:"required,oneof=student lecturer admin"`
	Code     string `json:"code" binding:"omitempty,min=2,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Gender   string `json:"gender" binding:"omitempty,oneof=Nam Nữ"`
	Birthday string `json:"birthday" binding:"omitempty"` // dd/mm/yyyy

	ClassID      int  `json:"class_id" binding:"omitempty"`      // Student only
	IsMonitor    bool `json:"is_monitor"`                        // Student only
	DepartmentID int  `json:"department_id" binding:"omitempty"` // Lecturer only
}

// UpdateUserRequest is the payload for updating a user's profile.
type UpdateUserRequest struct {
	Code     string `json:"code" binding:"omitempty,min=2,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Gender   string `json:"gender" binding:"omitempty,oneof=Nam Nữ"`
	Birthday string `json:"birthday" binding:"omitempty"`

	ClassID      int  `json:"class_id" binding:"omitempty"`
	IsMonitor    bool `json:"is_monitor"`
	DepartmentID int  `json:"department_id" binding:"omitempty"`
}

// SelfUpdateRequest is the payload a user may apply to their own profile.
type SelfUpdateRequest struct {
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
}

// ChangePasswordRequest is the payload for a self-service password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=4,max=128"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=128"`
}

// SetActiveRequest toggles an account's active flag.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
