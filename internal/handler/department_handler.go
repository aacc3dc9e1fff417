package handler

import (
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// DepartmentHandler manages department CRUD.
type DepartmentHandler struct {
	departmentService *service.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// List godoc
// GET /api/v1/departments
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.departmentService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, departments)
}

// Get godoc
// GET /api/v1/departments/:id
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	department, err := h.departmentService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, department)
}

// Create godoc
// POST /api/v1/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	department, err := h.departmentService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, department)
}

// Update godoc
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	department, err := h.departmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, department)
}

// Delete godoc
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
