package service

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/rs/zerolog"
)

// DepartmentService manages departments (khoa).
type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
	log            zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo *repository.DepartmentRepository, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		log:            log.With().Str("component", "department_service").Logger(),
	}
}

// List retrieves every department.
func (s *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	return s.departmentRepo.List(ctx)
}

// Get retrieves one department by id.
func (s *DepartmentService) Get(ctx context.Context, id int) (*model.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// Create inserts a new department.
func (s *DepartmentService) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	department := &model.Department{Name: req.Name}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Update renames a department.
func (s *DepartmentService) Update(ctx context.Context, id int, req *model.CreateDepartmentRequest) (*model.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = req.Name
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete removes a department. Fails while classes or lecturers reference it.
func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	return mapDeleteErr(s.departmentRepo.Delete(ctx, id))
}
