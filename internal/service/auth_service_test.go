package service

import (
	"context"
	"testing"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/model"
)

type fakePermissionSource struct {
	byRole map[string][]string
	calls  int
}

func (f *fakePermissionSource) GetPermissionsByRole(_ context.Context, role string) ([]string, error) {
	f.calls++
	return f.byRole[role], nil
}

func newTestAuthService(perms PermissionSource) *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTIssuer:  "test",
		JWTExpiry:  time.Hour,
		SuperRole:  "admin",
		BcryptCost: 4,
	}
	return NewAuthService(cfg, nil, perms)
}

func TestAllowSuperRoleBypass(t *testing.T) {
	src := &fakePermissionSource{byRole: map[string][]string{}}
	svc := newTestAuthService(src)

	ok, err := svc.Allow(context.Background(), model.RoleAdmin, string(model.PermissionUsersWrite))
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !ok {
		t.Fatal("super role must bypass the permission check")
	}
	if src.calls != 0 {
		t.Fatalf("super role must not hit the mapping, got %d calls", src.calls)
	}
}

func TestAllowChecksStoredMapping(t *testing.T) {
	src := &fakePermissionSource{byRole: map[string][]string{
		"lecturer": {
			string(model.PermissionEvaluationsRead),
			string(model.PermissionEvaluationsReadClass),
		},
	}}
	svc := newTestAuthService(src)

	tests := []struct {
		role       model.Role
		permission model.Permission
		want       bool
	}{
		{model.RoleLecturer, model.PermissionEvaluationsRead, true},
		{model.RoleLecturer, model.PermissionEvaluationsReadClass, true},
		{model.RoleLecturer, model.PermissionUsersWrite, false},
		{model.RoleStudent, model.PermissionEvaluationsRead, false},
	}

	for _, tt := range tests {
		ok, err := svc.Allow(context.Background(), tt.role, string(tt.permission))
		if err != nil {
			t.Fatalf("Allow(%s, %s): %v", tt.role, tt.permission, err)
		}
		if ok != tt.want {
			t.Errorf("Allow(%s, %s) = %v, want %v", tt.role, tt.permission, ok, tt.want)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	svc := newTestAuthService(&fakePermissionSource{})

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := svc.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("CheckPassword must reject a wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&fakePermissionSource{})

	classID := 7
	profile := &model.Profile{
		ID:      42,
		Role:    model.RoleStudent,
		ClassID: &classID,
	}

	token, err := svc.GenerateToken(profile, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.RoleStudent || claims.ClassID != 7 {
		t.Errorf("claims = %+v, want user 42 / student / class 7", claims)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc := newTestAuthService(&fakePermissionSource{})

	profile := &model.Profile{ID: 1, Role: model.RoleAdmin}
	token, err := svc.GenerateToken(profile, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered token must not validate")
	}
}
