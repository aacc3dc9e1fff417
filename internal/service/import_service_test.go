package service

import (
	"testing"

	"github.com/dnc-edu/conduct-backend/internal/model"
)

func TestParseUserRow(t *testing.T) {
	opts := ImportOptions{ClassID: 7, DepartmentID: 3}

	tests := []struct {
		name    string
		row     []string
		wantErr bool
		check   func(t *testing.T, req *model.CreateUserRequest)
	}{
		{
			name: "student monitor",
			row:  []string{"Nguyễn Văn An", "sv001", "secret123", "student", "SV001", "15/04/2007", "an@example.com", "0901234567", "Nam", "Lớp trưởng"},
			check: func(t *testing.T, req *model.CreateUserRequest) {
				if req.Role != model.RoleStudent {
					t.Errorf("role = %q, want student", req.Role)
				}
				if req.ClassID != 7 {
					t.Errorf("class id = %d, want 7", req.ClassID)
				}
				if !req.IsMonitor {
					t.Error("expected monitor flag")
				}
				if req.Birthday != "15/04/2007" {
					t.Errorf("birthday = %q", req.Birthday)
				}
			},
		},
		{
			name: "plain student",
			row:  []string{"Trần Thị Bình", "sv002", "secret123", "student", "SV002", "", "", "", "Nữ", ""},
			check: func(t *testing.T, req *model.CreateUserRequest) {
				if req.IsMonitor {
					t.Error("unexpected monitor flag")
				}
				if req.Gender != model.GenderFemale {
					t.Errorf("gender = %q, want %q", req.Gender, model.GenderFemale)
				}
			},
		},
		{
			name: "lecturer gets department",
			row:  []string{"Lê Văn Cường", "gv001", "secret123", "lecturer", "GV001", "", "", "", "Nam", ""},
			check: func(t *testing.T, req *model.CreateUserRequest) {
				if req.Role != model.RoleLecturer {
					t.Errorf("role = %q, want lecturer", req.Role)
				}
				if req.DepartmentID != 3 {
					t.Errorf("department id = %d, want 3", req.DepartmentID)
				}
				if req.ClassID != 0 {
					t.Errorf("class id = %d, want 0", req.ClassID)
				}
			},
		},
		{
			name: "short row padded with empty cells",
			row:  []string{"Phạm Admin", "admin2", "secret123", "admin"},
			check: func(t *testing.T, req *model.CreateUserRequest) {
				if req.Role != model.RoleAdmin {
					t.Errorf("role = %q, want admin", req.Role)
				}
			},
		},
		{
			name:    "unknown role",
			row:     []string{"X", "x1", "secret123", "teacher"},
			wantErr: true,
		},
		{
			name:    "missing username",
			row:     []string{"X", "", "secret123", "student", "SV003"},
			wantErr: true,
		},
		{
			name:    "invalid gender",
			row:     []string{"X", "x1", "secret123", "student", "SV003", "", "", "", "Khác", ""},
			wantErr: true,
		},
		{
			name:    "too many columns",
			row:     []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseUserRow(tt.row, opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, req)
		})
	}
}

func TestParseUserRowStudentNeedsClass(t *testing.T) {
	row := []string{"Nguyễn Văn An", "sv001", "secret123", "student", "SV001"}
	if _, err := parseUserRow(row, ImportOptions{}); err == nil {
		t.Fatal("expected error when no target class is set")
	}
}
