package repositories

import (
	"context"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// DepartmentRepository is the storage gateway contract for departments.
type DepartmentRepository interface {
	SaveDepartment(ctx context.Context, department domain.Department) error
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	// DeleteDepartment fails with a conflict while team members or access
	// links still reference the department.
	DeleteDepartment(ctx context.Context, departmentID string) error
}
