package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// permissionCacheTTL bounds how long a role's permission set may be served
// from Redis after a role mutation on another instance.
const permissionCacheTTL = 5 * time.Minute

// PermissionSource resolves the stored role→permission mapping.
type PermissionSource interface {
	GetPermissionsByRole(ctx context.Context, role string) ([]string, error)
}

// Claims extends JWT standard claims with app-specific fields. The embedded
// permission list is informational for the frontend; gated actions re-check
// the stored mapping through Allow.
type Claims struct {
	jwt.RegisteredClaims
	Role        model.Role `json:"role"`
	UserID      int        `json:"user_id"`
	ClassID     int        `json:"class_id,omitempty"`    // Student only
	Permissions []string   `json:"permissions,omitempty"` // Informational
}

// AuthService handles password hashing, JWT issuance/validation, and the
// permission policy.
type AuthService struct {
	cfg   *config.Config
	rdb   *redis.Client
	perms PermissionSource
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, perms PermissionSource) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, perms: perms}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken creates a JWT for the given profile. The permission list is
// embedded for the frontend's menu rendering only.
func (s *AuthService) GenerateToken(p *model.Profile, permissions []string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(p.ID),
			Issuer:    s.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role:        p.Role,
		UserID:      p.ID,
		Permissions: permissions,
	}
	if p.ClassID != nil {
		claims.ClassID = *p.ClassID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// Allow decides whether a role may perform the action behind the permission
// code. The super role passes unconditionally; every other role is checked
// against the stored mapping, never against the token's embedded list.
func (s *AuthService) Allow(ctx context.Context, role model.Role, permission string) (bool, error) {
	if string(role) == s.cfg.SuperRole {
		return true, nil
	}

	permissions, err := s.RolePermissions(ctx, role)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

// RolePermissions returns the stored permission codes of a role, served from
// Redis when fresh.
func (s *AuthService) RolePermissions(ctx context.Context, role model.Role) ([]string, error) {
	key := config.CacheKey.RolePermissionsKey(string(role))

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			if cached == "" {
				return nil, nil
			}
			return strings.Split(cached, ","), nil
		}
		if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("permission cache: %w", err)
		}
	}

	permissions, err := s.perms.GetPermissionsByRole(ctx, string(role))
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		// Best-effort cache fill; a miss just re-queries next time.
		_ = s.rdb.Set(ctx, key, strings.Join(permissions, ","), permissionCacheTTL).Err()
	}

	return permissions, nil
}

// InvalidatePermissionCache drops the cached permission set of every role.
// Called after role mutations.
func (s *AuthService) InvalidatePermissionCache(ctx context.Context, roles ...model.Role) error {
	if s.rdb == nil {
		return nil
	}
	keys := make([]string, 0, len(roles))
	for _, role := range roles {
		keys = append(keys, config.CacheKey.RolePermissionsKey(string(role)))
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
