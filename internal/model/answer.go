package model

import "time"

// Answer is a selectable response to a question, carrying a fixed signed
// point value. Positive scores are merits, negative scores are demerits and
// may be multiplied by a repeat amount at submission time.
//
// Editing an answer's score retroactively changes every past total that
// references it, because totals are always recomputed on read.
type Answer struct {
	ID         int       `json:"id"`
	QuestionID int       `json:"question_id"`
	Content    string    `json:"content"`
	Score      int       `json:"score"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateAnswerRequest is the payload for creating or updating an answer.
type CreateAnswerRequest struct {
	QuestionID int    `json:"question_id" binding:"required"`
	Content    string `json:"content" binding:"required,min=1,max=500"`
	Score      *int   `json:"score" binding:"required,min=-100,max=100"`
}
