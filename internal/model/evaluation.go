package model

import "time"

// EvaluationDetail is one selected answer plus its repeat amount. The amount
// only multiplies demerit (negative-score) answers; it is stored as given
// but merit answers always contribute a single occurrence.
type EvaluationDetail struct {
	AnswerID int `json:"answer_id" binding:"required"`
	Amount   int `json:"amount" binding:"omitempty,min=1,max=100"`
}

// SubmitEvaluationRequest is the payload for (re)submitting a self
// evaluation. The full prior selection for (student, semester) is replaced.
// An empty details list is valid and clears the submission.
type SubmitEvaluationRequest struct {
	SemesterID int                `json:"semester_id" binding:"required"`
	StudentID  int                `json:"student_id" binding:"omitempty"`
	Details    []EvaluationDetail `json:"details" binding:"dive"`
}

// EvaluationLine is one stored submission row.
type EvaluationLine struct {
	AnswerID  int       `json:"answer_id"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is one semester's computed conduct total for a student.
type HistoryEntry struct {
	SemesterID     int       `json:"semester_id"`
	SemesterName   string    `json:"semester_name"`
	SchoolYear     string    `json:"school_year"`
	TotalScore     int       `json:"total_score"`
	EvaluationDate time.Time `json:"evaluation_date"`
}

// ClassSummaryEntry is one student's computed total within a class view.
type ClassSummaryEntry struct {
	StudentID   int        `json:"student_id"`
	StudentCode string     `json:"student_code"`
	StudentName string     `json:"student_name"`
	TotalScore  int        `json:"total_score"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// SubmissionEvent is published on the class channel when a student's
// evaluation is replaced. Consumed by the live monitor feeds.
type SubmissionEvent struct {
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	ClassID     int       `json:"class_id"`
	SemesterID  int       `json:"semester_id"`
	TotalScore  int       `json:"total_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}
