package handler

import (
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/middleware"
	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// EvaluationHandler handles submission and score-view endpoints.
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evaluationService *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// Submit godoc
// POST /api/v1/evaluations
// Replaces the target student's evaluation for one semester. Students submit
// for themselves; lecturers, monitors and admins may submit on behalf via
// student_id.
func (h *EvaluationHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitEvaluationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	event, err := h.evaluationService.Submit(c.Request.Context(), middleware.ActorFromClaims(claims), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// GetStudentEvaluation godoc
// GET /api/v1/evaluations/student/:student_id/semester/:semester_id
// Returns the stored lines and the current total of one submission.
func (h *EvaluationHandler) GetStudentEvaluation(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := paramInt(c, "student_id")
	if !ok {
		return
	}
	semesterID, ok := paramInt(c, "semester_id")
	if !ok {
		return
	}

	lines, total, err := h.evaluationService.StudentEvaluation(
		c.Request.Context(), middleware.ActorFromClaims(claims), studentID, semesterID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student_id":  studentID,
		"semester_id": semesterID,
		"details":     lines,
		"total_score": total,
	})
}

// GetHistory godoc
// GET /api/v1/evaluations/history/:student_id
// Returns the per-semester totals of one student, most recent first.
func (h *EvaluationHandler) GetHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := paramInt(c, "student_id")
	if !ok {
		return
	}

	history, err := h.evaluationService.History(c.Request.Context(), middleware.ActorFromClaims(claims), studentID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

// GetClassSummary godoc
// GET /api/v1/evaluations/class/:class_id/semester/:semester_id
// Returns every class member with their current total for one semester.
func (h *EvaluationHandler) GetClassSummary(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classID, ok := paramInt(c, "class_id")
	if !ok {
		return
	}
	semesterID, ok := paramInt(c, "semester_id")
	if !ok {
		return
	}

	summary, err := h.evaluationService.ClassSummary(
		c.Request.Context(), middleware.ActorFromClaims(claims), classID, semesterID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
