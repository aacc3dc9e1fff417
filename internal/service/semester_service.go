package service

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SemesterService manages evaluation periods.
type SemesterService struct {
	semesterRepo *repository.SemesterRepository
	log          zerolog.Logger
}

// NewSemesterService creates a new SemesterService.
func NewSemesterService(semesterRepo *repository.SemesterRepository, log zerolog.Logger) *SemesterService {
	return &SemesterService{
		semesterRepo: semesterRepo,
		log:          log.With().Str("component", "semester_service").Logger(),
	}
}

// List retrieves every semester, most recent first.
func (s *SemesterService) List(ctx context.Context) ([]model.Semester, error) {
	return s.semesterRepo.List(ctx)
}

// Get retrieves one semester by id.
func (s *SemesterService) Get(ctx context.Context, id int) (*model.Semester, error) {
	return s.semesterRepo.GetByID(ctx, id)
}

// GetActive retrieves the currently active semester, if any.
func (s *SemesterService) GetActive(ctx context.Context) (*model.Semester, error) {
	return s.semesterRepo.GetActive(ctx)
}

// Create inserts a new semester.
func (s *SemesterService) Create(ctx context.Context, req *model.CreateSemesterRequest) (*model.Semester, error) {
	semester := semesterFromRequest(req)
	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return nil, err
	}
	s.log.Info().Int("semester_id", semester.ID).Str("name", semester.Name).Msg("semester created")
	return semester, nil
}

// Update replaces a semester's fields.
func (s *SemesterService) Update(ctx context.Context, id int, req *model.CreateSemesterRequest) (*model.Semester, error) {
	if _, err := s.semesterRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	semester := semesterFromRequest(req)
	semester.ID = id
	if err := s.semesterRepo.Update(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

// Delete removes a semester. Fails while submissions reference it.
func (s *SemesterService) Delete(ctx context.Context, id int) error {
	return mapDeleteErr(s.semesterRepo.Delete(ctx, id))
}

func semesterFromRequest(req *model.CreateSemesterRequest) *model.Semester {
	return &model.Semester{
		Name:         req.Name,
		SchoolYear:   req.SchoolYear,
		StudentOpen:  req.StudentOpen,
		StudentClose: req.StudentClose,
		ReviewOpen:   req.ReviewOpen,
		ReviewClose:  req.ReviewClose,
		Active:       req.Active,
	}
}
