package handler

import (
	"net/http"
	"strconv"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// ClassHandler manages class CRUD and membership views.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List godoc
// GET /api/v1/classes?department_id=
func (h *ClassHandler) List(c *gin.Context) {
	var departmentID *int
	if v := c.Query("department_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		departmentID = &id
	}

	classes, err := h.classService.List(c.Request.Context(), departmentID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, classes)
}

// Get godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	class, err := h.classService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// ListStudents godoc
// GET /api/v1/classes/:id/students
func (h *ClassHandler) ListStudents(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	students, err := h.classService.ListStudents(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// Create godoc
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	class, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, class)
}

// Update godoc
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	class, err := h.classService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// Delete godoc
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
