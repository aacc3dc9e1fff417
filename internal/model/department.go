package model

import "time"

// Department represents a faculty/department (khoa).
type Department struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDepartmentRequest is the payload for creating or updating a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=150"`
}
