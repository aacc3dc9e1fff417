package service

import (
	"errors"
	"testing"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/model"
)

func TestParseBirthday(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{raw: "", wantNil: true},
		{raw: "15/04/2007", want: time.Date(2007, 4, 15, 0, 0, 0, 0, time.UTC)},
		{raw: "2007-04-15", want: time.Date(2007, 4, 15, 0, 0, 0, 0, time.UTC)},
		{raw: "04-15-2007", wantErr: true},
		{raw: "32/01/2007", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseBirthday(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBirthday) {
					t.Fatalf("got %v, want ErrInvalidBirthday", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
				return
			}
			if got == nil || !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileFromCreateRequest(t *testing.T) {
	base := model.CreateUserRequest{
		Name:     "Nguyễn Văn An",
		Username: "sv001",
		Password: "secret123",
		Code:     "SV001",
	}

	t.Run("student requires class", func(t *testing.T) {
		req := base
		req.Role = model.RoleStudent
		if _, err := profileFromCreateRequest(&req); !errors.Is(err, ErrProfileRequired) {
			t.Fatalf("got %v, want ErrProfileRequired", err)
		}

		req.ClassID = 7
		req.IsMonitor = true
		profile, err := profileFromCreateRequest(&req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.ClassID == nil || *profile.ClassID != 7 {
			t.Errorf("class id = %v, want 7", profile.ClassID)
		}
		if !profile.IsMonitor {
			t.Error("expected monitor flag")
		}
	})

	t.Run("lecturer requires department", func(t *testing.T) {
		req := base
		req.Role = model.RoleLecturer
		if _, err := profileFromCreateRequest(&req); !errors.Is(err, ErrProfileRequired) {
			t.Fatalf("got %v, want ErrProfileRequired", err)
		}

		req.DepartmentID = 3
		profile, err := profileFromCreateRequest(&req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.DepartmentID == nil || *profile.DepartmentID != 3 {
			t.Errorf("department id = %v, want 3", profile.DepartmentID)
		}
	})

	t.Run("admin needs nothing extra", func(t *testing.T) {
		req := base
		req.Role = model.RoleAdmin
		req.Code = ""
		profile, err := profileFromCreateRequest(&req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !profile.Active {
			t.Error("new profiles start active")
		}
	})
}
