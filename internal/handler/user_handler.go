package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// UserHandler manages users of all roles plus the bulk import.
type UserHandler struct {
	accountService *service.AccountService
	importService  *service.ImportService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService *service.AccountService, importService *service.ImportService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		importService:  importService,
	}
}

// roleParam validates the :role path segment.
func roleParam(c *gin.Context) (model.Role, bool) {
	role := model.Role(c.Param("role"))
	if !role.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return role, true
}

// List godoc
// GET /api/v1/users/:role?page=&per_page=
func (h *UserHandler) List(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := h.accountService.ListUsers(c.Request.Context(), role, perPage, (page-1)*perPage)
	if err != nil {
		fail(c, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Get godoc
// GET /api/v1/users/:role/:id
func (h *UserHandler) Get(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	user, err := h.accountService.GetUser(c.Request.Context(), role, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Create godoc
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.accountService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// Update godoc
// PUT /api/v1/users/:role/:id
func (h *UserHandler) Update(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.accountService.UpdateUser(c.Request.Context(), role, id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// SetActive godoc
// PATCH /api/v1/users/:role/:id/active
// Disabling keeps all submission history; the user just cannot log in.
func (h *UserHandler) SetActive(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req model.SetActiveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.accountService.SetActive(c.Request.Context(), role, id, *req.Active); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Delete godoc
// DELETE /api/v1/users/:role/:id
func (h *UserHandler) Delete(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.DeleteUser(c.Request.Context(), role, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Import godoc
// POST /api/v1/users/import
// Multipart upload: "file" holds the xlsx sheet; class_id / department_id
// target student and lecturer rows.
func (h *UserHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	opts := service.ImportOptions{}
	if v := c.PostForm("class_id"); v != "" {
		opts.ClassID, _ = strconv.Atoi(v)
	}
	if v := c.PostForm("department_id"); v != "" {
		opts.DepartmentID, _ = strconv.Atoi(v)
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	result, err := h.importService.ImportUsers(c.Request.Context(), file, opts)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}
	response.Success(c, http.StatusOK, result)
}
