package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/google/uuid"
)

// DepartmentService handles department lifecycle.
type DepartmentService struct {
	departmentRepo portsrepo.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(dr portsrepo.DepartmentRepository) portssvc.DepartmentService {
	return &DepartmentService{departmentRepo: dr}
}

var _ portssvc.DepartmentService = (*DepartmentService)(nil)

// CreateDepartment creates a new department. Any admin capability may do
// this (a brand-new department has no admins yet that could authorize it).
func (s *DepartmentService) CreateDepartment(ctx context.Context, capability domain.Capability, name string) (*domain.Department, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if capability.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbiddenError("only an admin capability may create departments")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("department name must not be empty")
	}

	now := time.Now()
	department := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         name,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		logger.Error("Failed to save department", slog.String("error", err.Error()), slog.String("name", name))
		return nil, err
	}

	logger.Info("Department created", slog.String("department_id", department.DepartmentID), slog.String("name", name))
	return &department, nil
}

// GetDepartment fetches one department; viewer capability suffices.
func (s *DepartmentService) GetDepartment(ctx context.Context, capability domain.Capability, departmentID string) (*domain.Department, error) {
	if !capability.CanView(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot view this department")
	}

	department, err := retryReadOnce(func() (*domain.Department, error) {
		return s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	})
	if err != nil {
		return nil, err
	}
	return department, nil
}

// ListDepartments lists departments visible to the capability. The global
// break-glass capability sees all of them so an operator can locate a
// department whose links were lost; a scoped capability sees only its own.
func (s *DepartmentService) ListDepartments(ctx context.Context, capability domain.Capability) ([]domain.Department, error) {
	if capability.Global {
		departments, err := retryReadOnce(func() ([]domain.Department, error) {
			return s.departmentRepo.ListDepartments(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list departments: %w", err)
		}
		if departments == nil {
			departments = []domain.Department{}
		}
		return departments, nil
	}

	if !capability.CanView(capability.DepartmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot list departments")
	}
	department, err := retryReadOnce(func() (*domain.Department, error) {
		return s.departmentRepo.FindDepartmentByID(ctx, capability.DepartmentID)
	})
	if err != nil {
		return nil, err
	}
	return []domain.Department{*department}, nil
}

// DeleteDepartment removes a department. The delete is rejected with a
// conflict while team members or access links still reference it, so no
// historical data disappears by accident.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, capability domain.Capability, departmentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return apperrors.NewForbiddenError("capability cannot delete this department")
	}

	if err := s.departmentRepo.DeleteDepartment(ctx, departmentID); err != nil {
		logger.Warn("Failed to delete department", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return fmt.Errorf("failed to delete department %s: %w", departmentID, err)
	}

	logger.Info("Department deleted", slog.String("department_id", departmentID))
	return nil
}
