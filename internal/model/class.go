package model

import "time"

// Class represents a student class group within a department.
type Class struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	DepartmentID int       `json:"department_id"`
	LecturerID   *int      `json:"lecturer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=50"`
	DepartmentID int    `json:"department_id" binding:"required"`
	LecturerID   *int   `json:"lecturer_id" binding:"omitempty"`
}
