package service

import (
	"context"
	"errors"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/dnc-edu/conduct-backend/internal/scoring"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// DashboardSummary is the admin landing-page aggregate.
type DashboardSummary struct {
	TotalStudents  int             `json:"total_students"`
	TotalLecturers int             `json:"total_lecturers"`
	TotalClasses   int             `json:"total_classes"`
	TotalQuestions int             `json:"total_questions"`
	ActiveSemester *model.Semester `json:"active_semester,omitempty"`
	SubmittedCount int             `json:"submitted_count"`
	Distribution   []ScoreBucket   `json:"distribution,omitempty"`
}

// ScoreBucket is one conduct classification band with its student count.
type ScoreBucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Count int    `json:"count"`
}

// DashboardService assembles the summary counters.
type DashboardService struct {
	dashboardRepo  *repository.DashboardRepository
	semesterRepo   *repository.SemesterRepository
	evaluationRepo *repository.EvaluationRepository
	log            zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	semesterRepo *repository.SemesterRepository,
	evaluationRepo *repository.EvaluationRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		dashboardRepo:  dashboardRepo,
		semesterRepo:   semesterRepo,
		evaluationRepo: evaluationRepo,
		log:            log.With().Str("component", "dashboard_service").Logger(),
	}
}

// Summary computes the dashboard counters. The submitted counter covers the
// active semester; without one it stays zero.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	students, lecturers, classes, questions, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalStudents:  students,
		TotalLecturers: lecturers,
		TotalClasses:   classes,
		TotalQuestions: questions,
	}

	active, err := s.semesterRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary, nil
		}
		return nil, err
	}
	summary.ActiveSemester = active

	submitted, err := s.evaluationRepo.CountBySemester(ctx, active.ID)
	if err != nil {
		return nil, err
	}
	summary.SubmittedCount = submitted

	lines, err := s.evaluationRepo.ListSemesterLines(ctx, active.ID)
	if err != nil {
		return nil, err
	}
	summary.Distribution = buildDistribution(lines)
	return summary, nil
}

// Classification bands for conduct totals, highest first. A total falls into
// the first band whose lower bound it reaches; the last band is the floor.
var scoreBands = []ScoreBucket{
	{Label: "Xuất sắc", Min: 90},
	{Label: "Tốt", Min: 80},
	{Label: "Khá", Min: 65},
	{Label: "Trung bình", Min: 50},
	{Label: "Yếu", Min: 35},
	{Label: "Kém", Min: -100},
}

// buildDistribution computes each submitting student's clamped total and
// counts them per classification band. Lines whose answer was removed
// contribute nothing.
func buildDistribution(lines []repository.SemesterLine) []ScoreBucket {
	totals := map[int]int{}
	for _, l := range lines {
		if l.Score == nil {
			if _, ok := totals[l.StudentID]; !ok {
				totals[l.StudentID] = 0
			}
			continue
		}
		totals[l.StudentID] += lineScore(*l.Score, l.Amount)
	}

	buckets := make([]ScoreBucket, len(scoreBands))
	copy(buckets, scoreBands)
	for _, total := range totals {
		total = scoring.Clamp(total)
		for i := range buckets {
			if total >= buckets[i].Min {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}
