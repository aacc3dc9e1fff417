package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

func intPtr(v int) *int { return &v }

func TestNormalizeDetails(t *testing.T) {
	scores := map[int]int{1: 10, 2: -5, 3: 20}

	tests := []struct {
		name    string
		details []model.EvaluationDetail
		want    []model.EvaluationDetail
	}{
		{
			name: "unknown answers dropped",
			details: []model.EvaluationDetail{
				{AnswerID: 1, Amount: 1},
				{AnswerID: 99, Amount: 3},
			},
			want: []model.EvaluationDetail{{AnswerID: 1, Amount: 1}},
		},
		{
			name: "zero amount normalized to one",
			details: []model.EvaluationDetail{
				{AnswerID: 2, Amount: 0},
			},
			want: []model.EvaluationDetail{{AnswerID: 2, Amount: 1}},
		},
		{
			name: "duplicate answer keeps last occurrence",
			details: []model.EvaluationDetail{
				{AnswerID: 2, Amount: 2},
				{AnswerID: 1, Amount: 1},
				{AnswerID: 2, Amount: 5},
			},
			want: []model.EvaluationDetail{
				{AnswerID: 2, Amount: 5},
				{AnswerID: 1, Amount: 1},
			},
		},
		{
			name:    "empty stays empty",
			details: nil,
			want:    []model.EvaluationDetail{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeDetails(tt.details, scores)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d details, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("detail %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildHistory(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
	}
	semesters := map[int]model.Semester{
		1: {ID: 1, Name: "Học kỳ 1", SchoolYear: "2025-2026"},
		2: {ID: 2, Name: "Học kỳ 2", SchoolYear: "2025-2026"},
	}
	lines := []repository.StudentLine{
		{SemesterID: 2, AnswerID: 1, Amount: 1, Score: intPtr(10), CreatedAt: day(3)},
		{SemesterID: 2, AnswerID: 2, Amount: 6, Score: intPtr(-20), CreatedAt: day(4)},
		{SemesterID: 1, AnswerID: 1, Amount: 4, Score: intPtr(10), CreatedAt: day(1)},
		{SemesterID: 1, AnswerID: 3, Amount: 2, Score: nil, CreatedAt: day(2)},
	}

	got := buildHistory(lines, semesters)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}

	// Semester 2 first: 10 + (-20*6) = -110, clamped to -100.
	if got[0].SemesterID != 2 || got[0].TotalScore != -100 {
		t.Errorf("entry 0: got semester %d total %d, want semester 2 total -100", got[0].SemesterID, got[0].TotalScore)
	}
	if !got[0].EvaluationDate.Equal(day(4)) {
		t.Errorf("entry 0: evaluation date %v, want %v", got[0].EvaluationDate, day(4))
	}
	if got[0].SemesterName != "Học kỳ 2" || got[0].SchoolYear != "2025-2026" {
		t.Errorf("entry 0: semester metadata not filled: %+v", got[0])
	}

	// Semester 1: merit amount ignored (10, not 40); removed answer scores 0.
	if got[1].SemesterID != 1 || got[1].TotalScore != 10 {
		t.Errorf("entry 1: got semester %d total %d, want semester 1 total 10", got[1].SemesterID, got[1].TotalScore)
	}
}

func TestBuildClassSummary(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 8, 0, 0, 0, time.UTC)
	}
	students := []model.Profile{
		{ID: 1, Code: "SV001", Name: "An"},
		{ID: 2, Code: "SV002", Name: "Bình"},
		{ID: 3, Code: "SV003", Name: "Chi"},
	}
	lines := []repository.ClassLine{
		{StudentID: 1, AnswerID: 1, Amount: 1, Score: intPtr(80), CreatedAt: day(1)},
		{StudentID: 1, AnswerID: 2, Amount: 2, Score: intPtr(30), CreatedAt: day(2)},
		{StudentID: 2, AnswerID: 3, Amount: 3, Score: intPtr(-10), CreatedAt: day(1)},
		// Stale line of a student moved out of the class.
		{StudentID: 99, AnswerID: 1, Amount: 1, Score: intPtr(10), CreatedAt: day(1)},
	}

	got := buildClassSummary(students, lines)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	// 80 + 30 = 110, clamped to 100; merit amount ignored.
	if got[0].TotalScore != 100 {
		t.Errorf("student 1 total = %d, want 100", got[0].TotalScore)
	}
	if got[0].SubmittedAt == nil || !got[0].SubmittedAt.Equal(day(2)) {
		t.Errorf("student 1 submitted at %v, want %v", got[0].SubmittedAt, day(2))
	}

	if got[1].TotalScore != -30 {
		t.Errorf("student 2 total = %d, want -30", got[1].TotalScore)
	}

	// Student 3 never submitted.
	if got[2].TotalScore != 0 || got[2].SubmittedAt != nil {
		t.Errorf("student 3: got total %d submitted %v, want 0 and nil", got[2].TotalScore, got[2].SubmittedAt)
	}
}

func TestLineScore(t *testing.T) {
	tests := []struct {
		score, amount, want int
	}{
		{10, 1, 10},
		{10, 5, 10},   // merit never multiplies
		{-5, 1, -5},
		{-5, 4, -20},  // demerit multiplies
		{0, 9, 0},
	}
	for _, tt := range tests {
		if got := lineScore(tt.score, tt.amount); got != tt.want {
			t.Errorf("lineScore(%d, %d) = %d, want %d", tt.score, tt.amount, got, tt.want)
		}
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	got, err := json.Marshal(buildHistory(nil, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("empty history serializes as %s, want []", got)
	}
}

type fakeStudentDirectory struct {
	students map[int]*model.Profile
}

func (f *fakeStudentDirectory) GetByID(ctx context.Context, id int) (*model.Profile, error) {
	if p, ok := f.students[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentDirectory) ListByClass(ctx context.Context, classID int) ([]model.Profile, error) {
	return nil, nil
}

type fakeClassRoster struct {
	classID    int
	lecturerID int
}

func (f *fakeClassRoster) IsLecturerOf(ctx context.Context, classID, lecturerID int) (bool, error) {
	return classID == f.classID && lecturerID == f.lecturerID, nil
}

func TestCheckClassAccess(t *testing.T) {
	svc := &EvaluationService{
		studentRepo: &fakeStudentDirectory{students: map[int]*model.Profile{
			7: {ID: 7, Role: model.RoleStudent, ClassID: intPtr(5)},
			8: {ID: 8, Role: model.RoleStudent, ClassID: intPtr(5), IsMonitor: true},
		}},
		classRepo: &fakeClassRoster{classID: 5, lecturerID: 3},
	}

	tests := []struct {
		name    string
		actor   Actor
		classID int
		wantErr error
	}{
		{"admin, any class", Actor{Role: model.RoleAdmin, UserID: 1}, 5, nil},
		{"assigned lecturer", Actor{Role: model.RoleLecturer, UserID: 3}, 5, nil},
		{"other lecturer", Actor{Role: model.RoleLecturer, UserID: 4}, 5, ErrNotAllowed},
		{"class monitor", Actor{Role: model.RoleStudent, UserID: 8, ClassID: 5}, 5, nil},
		{"plain classmate", Actor{Role: model.RoleStudent, UserID: 7, ClassID: 5}, 5, ErrNotAllowed},
		{"student of another class", Actor{Role: model.RoleStudent, UserID: 8, ClassID: 5}, 6, ErrNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckClassAccess(context.Background(), tt.actor, tt.classID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
