package handler

import (
	"errors"
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/middleware"
	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints for every role.
type AuthHandler struct {
	cfg            *config.Config
	authService    *service.AuthService
	accountService *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		cfg:            cfg,
		authService:    authService,
		accountService: accountService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates username + password for any role and returns a JWT. The token is
// also mirrored into an HTTP-only cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.accountService.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if !account.Active {
		response.Fail(c, http.StatusForbidden, response.ErrAccountDisabled)
		return
	}
	if err := h.authService.CheckPassword(account.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	profile, err := h.accountService.ProfileFor(c.Request.Context(), account)
	if err != nil {
		fail(c, err)
		return
	}
	if !profile.Active {
		response.Fail(c, http.StatusForbidden, response.ErrAccountDisabled)
		return
	}

	permissions, err := h.authService.RolePermissions(c.Request.Context(), account.Role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateToken(profile, permissions)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.SetCookie(middleware.AuthCookieName, token,
		int(h.cfg.JWTExpiry.Seconds()), "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)

	response.Success(c, http.StatusOK, model.LoginResponse{
		Token:       token,
		Role:        account.Role,
		User:        profile,
		Permissions: permissions,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the auth cookie. Bearer tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated user's profile and effective permissions.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	profile, err := h.accountService.GetUser(c.Request.Context(), claims.Role, claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	permissions, err := h.authService.RolePermissions(c.Request.Context(), claims.Role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":        profile,
		"permissions": permissions,
	})
}

// UpdateMe godoc
// PATCH /api/v1/auth/me
// Applies the contact fields a user may change on their own profile.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SelfUpdateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.accountService.SelfUpdate(c.Request.Context(), claims.Role, claims.UserID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// ChangePassword godoc
// POST /api/v1/auth/change-password
// Verifies the current password before storing the new one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.accountService.ChangePassword(c.Request.Context(), claims.Role, claims.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
