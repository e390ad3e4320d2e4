package dto

import (
	"time"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// CreateDepartmentRequest is the payload for creating a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// DepartmentResponse is the API representation of a department.
type DepartmentResponse struct {
	DepartmentID string    `json:"departmentID"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListDepartmentsResponse wraps a list of departments.
type ListDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		CreatedAt:    d.CreatedAt,
	}
}

func ToListDepartmentsResponse(departments []domain.Department) ListDepartmentsResponse {
	resp := ListDepartmentsResponse{Departments: make([]DepartmentResponse, 0, len(departments))}
	for i := range departments {
		resp.Departments = append(resp.Departments, ToDepartmentResponse(&departments[i]))
	}
	return resp
}
