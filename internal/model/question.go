package model

import "time"

// QuestionType is a category over questions (e.g. học tập, hoạt động).
type QuestionType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QuestionGroup is a display grouping over questions.
type QuestionGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question is a conduct criterion. Its selectable answers carry the signed
// point values; the question itself scores nothing.
type Question struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	OrderNum  int       `json:"order_num"`
	TypeID    int       `json:"type_id"`
	GroupID   int       `json:"group_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionWithAnswers bundles a question with its selectable answers for the
// submission form. Answers are deduplicated by content.
type QuestionWithAnswers struct {
	Question
	Answers []Answer `json:"answers"`
}

// CreateQuestionRequest is the payload for creating or updating a question.
type CreateQuestionRequest struct {
	Content  string `json:"content" binding:"required,min=2,max=2000"`
	OrderNum int    `json:"order_num" binding:"min=0"`
	TypeID   int    `json:"type_id" binding:"required"`
	GroupID  int    `json:"group_id" binding:"required"`
}

// CreateCategoryRequest is the payload for question type/group rows.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=150"`
}
