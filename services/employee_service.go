package services

import (
	"context"

	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/repositories"
	"go.uber.org/zap"
)

// EmployeeService implements the employee CRUD operations on top of an
// EmployeeRepository.
type EmployeeService struct {
	repo   repositories.EmployeeRepository
	logger *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(repo repositories.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		logger: logger,
	}
}

// List returns employees matching the filter plus the total match count
func (s *EmployeeService) List(ctx context.Context, filter repositories.EmployeeFilter) ([]models.Employee, int, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, WrapInternal("employee listing failed", err)
	}
	return list, total, nil
}

// GetByID returns the employee with the given ID
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	emp, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, WrapInternal("employee lookup failed", err)
	}
	if !found {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

// Create persists a new employee
func (s *EmployeeService) Create(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, WrapInternal("employee create failed", err)
	}
	s.logger.Info("employee created", zap.Int64("id", emp.ID))
	return emp, nil
}

// Update replaces the employee with the given ID
func (s *EmployeeService) Update(ctx context.Context, id int64, emp *models.Employee) (*models.Employee, error) {
	found, err := s.repo.Update(ctx, id, emp)
	if err != nil {
		return nil, WrapInternal("employee update failed", err)
	}
	if !found {
		return nil, ErrEmployeeNotFound
	}
	s.logger.Info("employee updated", zap.Int64("id", id))
	return emp, nil
}

// Delete removes the employee with the given ID
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return WrapInternal("employee delete failed", err)
	}
	if !found {
		return ErrEmployeeNotFound
	}
	s.logger.Info("employee deleted", zap.Int64("id", id))
	return nil
}
