package model

import "time"

// Gender labels follow the user-facing locale.
const (
	GenderMale   = "Nam"
	GenderFemale = "Nữ"
)

// Profile is the role-independent projection of a user's profile row.
// Fields that only exist for one role are pointers so the others serialize
// as null instead of zero values.
type Profile struct {
	ID       int        `json:"id"`
	Role     Role       `json:"role"`
	Code     string     `json:"code,omitempty"`
	Name     string     `json:"name"`
	Email    string     `json:"email,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	Gender   string     `json:"gender,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`

	ClassID      *int `json:"class_id,omitempty"`      // Student only
	IsMonitor    bool `json:"is_monitor,omitempty"`    // Student only
	DepartmentID *int `json:"department_id,omitempty"` // Lecturer only

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
