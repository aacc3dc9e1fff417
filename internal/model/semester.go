package model

import "time"

// Semester represents one evaluation period. The student window gates
// self-service submissions; the review window gates lecturer sign-off and
// on-behalf submissions. An inactive semester is closed regardless of dates.
type Semester struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	SchoolYear   string    `json:"school_year"`
	StudentOpen  time.Time `json:"student_open"`
	StudentClose time.Time `json:"student_close"`
	ReviewOpen   time.Time `json:"review_open"`
	ReviewClose  time.Time `json:"review_close"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OpenForStudent reports whether self-service submission is accepted at t.
func (s *Semester) OpenForStudent(t time.Time) bool {
	return s.Active && !t.Before(s.StudentOpen) && !t.After(s.StudentClose)
}

// OpenForReview reports whether on-behalf submission is accepted at t.
func (s *Semester) OpenForReview(t time.Time) bool {
	return s.Active && !t.Before(s.ReviewOpen) && !t.After(s.ReviewClose)
}

// CreateSemesterRequest is the payload for creating or updating a semester.
type CreateSemesterRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=50"`
	SchoolYear   string    `json:"school_year" binding:"required,min=4,max=20"`
	StudentOpen  time.Time `json:"student_open" binding:"required"`
	StudentClose time.Time `json:"student_close" binding:"required,gtfield=StudentOpen"`
	ReviewOpen   time.Time `json:"review_open" binding:"required"`
	ReviewClose  time.Time `json:"review_close" binding:"required,gtfield=ReviewOpen"`
	Active       bool      `json:"active"`
}
