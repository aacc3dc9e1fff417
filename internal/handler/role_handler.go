package handler

import (
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// RoleHandler manages the role-permission mapping.
type RoleHandler struct {
	roleService *service.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// List godoc
// GET /api/v1/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles)
}

// ListPermissions godoc
// GET /api/v1/roles/permissions
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleService.ListPermissions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, permissions)
}

type replacePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// ReplacePermissions godoc
// PUT /api/v1/roles/:id/permissions
// Swaps the role's permission set; takes effect on the next request.
func (h *RoleHandler) ReplacePermissions(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}
	var req replacePermissionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.roleService.ReplacePermissions(c.Request.Context(), id, req.Permissions); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
