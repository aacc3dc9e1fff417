package handler

import (
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuestionHandler manages the evaluation form: questions, answers and their
// categories.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Form godoc
// GET /api/v1/questions/form
// The submission form: active questions with deduplicated active answers.
func (h *QuestionHandler) Form(c *gin.Context) {
	form, err := h.questionService.Form(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, form)
}

// List godoc
// GET /api/v1/questions?include_inactive=true
func (h *QuestionHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	questions, err := h.questionService.List(c.Request.Context(), includeInactive)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, questions)
}

// Get godoc
// GET /api/v1/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, question)
}

// Create godoc
// POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, question)
}

// Update godoc
// PUT /api/v1/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, question)
}

// Delete godoc
// DELETE /api/v1/questions/:id
// Soft delete; stored submissions keep their rows.
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListTypes godoc
// GET /api/v1/questions/types
func (h *QuestionHandler) ListTypes(c *gin.Context) {
	types, err := h.questionService.ListTypes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, types)
}

// CreateType godoc
// POST /api/v1/questions/types
func (h *QuestionHandler) CreateType(c *gin.Context) {
	var req model.CreateCategoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	t, err := h.questionService.CreateType(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

// ListGroups godoc
// GET /api/v1/questions/groups
func (h *QuestionHandler) ListGroups(c *gin.Context) {
	groups, err := h.questionService.ListGroups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, groups)
}

// CreateGroup godoc
// POST /api/v1/questions/groups
func (h *QuestionHandler) CreateGroup(c *gin.Context) {
	var req model.CreateCategoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	g, err := h.questionService.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, g)
}

// ListAnswers godoc
// GET /api/v1/questions/:id/answers
func (h *QuestionHandler) ListAnswers(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	answers, err := h.questionService.ListAnswers(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, answers)
}

// CreateAnswer godoc
// POST /api/v1/answers
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	var req model.CreateAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	answer, err := h.questionService.CreateAnswer(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, answer)
}

// UpdateAnswer godoc
// PUT /api/v1/answers/:id
// Score edits retroactively change every total referencing this answer.
func (h *QuestionHandler) UpdateAnswer(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req model.CreateAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	answer, err := h.questionService.UpdateAnswer(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, answer)
}

// DeleteAnswer godoc
// DELETE /api/v1/answers/:id
func (h *QuestionHandler) DeleteAnswer(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.questionService.DeleteAnswer(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
