package service

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ClassService manages classes and their membership views.
type ClassService struct {
	classRepo   *repository.ClassRepository
	studentRepo *repository.StudentRepository
	log         zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, studentRepo *repository.StudentRepository, log zerolog.Logger) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		studentRepo: studentRepo,
		log:         log.With().Str("component", "class_service").Logger(),
	}
}

// List retrieves classes, optionally filtered by department.
func (s *ClassService) List(ctx context.Context, departmentID *int) ([]model.Class, error) {
	return s.classRepo.List(ctx, departmentID)
}

// Get retrieves one class by id.
func (s *ClassService) Get(ctx context.Context, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// ListStudents retrieves the members of one class.
func (s *ClassService) ListStudents(ctx context.Context, classID int) ([]model.Profile, error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListByClass(ctx, classID)
}

// Create inserts a new class.
func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	class := &model.Class{
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
		LecturerID:   req.LecturerID,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Update replaces a class's fields, including the homeroom lecturer.
func (s *ClassService) Update(ctx context.Context, id int, req *model.CreateClassRequest) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	class.Name = req.Name
	class.DepartmentID = req.DepartmentID
	class.LecturerID = req.LecturerID
	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete removes a class. Fails while students reference it.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	return mapDeleteErr(s.classRepo.Delete(ctx, id))
}
