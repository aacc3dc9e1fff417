package handler

import (
	"errors"
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// SemesterHandler manages semester CRUD.
type SemesterHandler struct {
	semesterService *service.SemesterService
}

// NewSemesterHandler creates a new SemesterHandler.
func NewSemesterHandler(semesterService *service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterService: semesterService}
}

// List godoc
// GET /api/v1/semesters
func (h *SemesterHandler) List(c *gin.Context) {
	semesters, err := h.semesterService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, semesters)
}

// GetActive godoc
// GET /api/v1/semesters/active
// Returns null data when no semester is active.
func (h *SemesterHandler) GetActive(c *gin.Context) {
	semester, err := h.semesterService.GetActive(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Success(c, http.StatusOK, nil)
			return
		}
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

// Get godoc
// GET /api/v1/semesters/:id
func (h *SemesterHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	semester, err := h.semesterService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

// Create godoc
// POST /api/v1/semesters
func (h *SemesterHandler) Create(c *gin.Context) {
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	semester, err := h.semesterService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, semester)
}

// Update godoc
// PUT /api/v1/semesters/:id
func (h *SemesterHandler) Update(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	semester, err := h.semesterService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

// Delete godoc
// DELETE /api/v1/semesters/:id
func (h *SemesterHandler) Delete(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.semesterService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
