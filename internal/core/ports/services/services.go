package services

import (
	"context"
	"time"

	"github.com/bahadricoz/shift/internal/core/domain"
	"github.com/bahadricoz/shift/internal/dto"
)

// AccessService resolves bearer tokens to capabilities and manages access
// links. Resolution is a pure per-request lookup; nothing is cached, so a
// revoked token stops working on the next request.
type AccessService interface {
	ResolveToken(ctx context.Context, token string) (domain.Capability, error)
	IssueAccessLink(ctx context.Context, capability domain.Capability, departmentID string, role domain.Role, label string) (*domain.AccessLink, error)
	RevokeAccessLink(ctx context.Context, capability domain.Capability, departmentID, linkID string) error
	ListAccessLinks(ctx context.Context, capability domain.Capability, departmentID string) ([]domain.AccessLink, error)
	// Bootstrap creates the first department plus its admin and viewer links.
	// It is open only while zero access links exist, or to the global
	// break-glass capability afterwards.
	Bootstrap(ctx context.Context, capability domain.Capability, departmentName string) (*domain.Department, []domain.AccessLink, error)
}

// DepartmentService manages departments.
type DepartmentService interface {
	CreateDepartment(ctx context.Context, capability domain.Capability, name string) (*domain.Department, error)
	GetDepartment(ctx context.Context, capability domain.Capability, departmentID string) (*domain.Department, error)
	// ListDepartments returns every department for the global break-glass
	// capability (recovery aid) and only the caller's own department for a
	// scoped one.
	ListDepartments(ctx context.Context, capability domain.Capability) ([]domain.Department, error)
	DeleteDepartment(ctx context.Context, capability domain.Capability, departmentID string) error
}

// TeamMemberService manages the employees of a department.
type TeamMemberService interface {
	AddTeamMember(ctx context.Context, capability domain.Capability, departmentID, memberRef, displayName string) (*domain.TeamMember, error)
	EditTeamMember(ctx context.Context, capability domain.Capability, departmentID, memberID, memberRef, displayName string) (*domain.TeamMember, error)
	RemoveTeamMember(ctx context.Context, capability domain.Capability, departmentID, memberID string) error
	ListTeamMembers(ctx context.Context, capability domain.Capability, departmentID string) ([]domain.TeamMember, error)
}

// ShiftService validates and persists shift rows.
type ShiftService interface {
	UpsertShift(ctx context.Context, capability domain.Capability, input dto.UpsertShiftInput) (*domain.Shift, error)
	DeleteShift(ctx context.Context, capability domain.Capability, departmentID, shiftID string) error
	DeleteShiftsForMemberDate(ctx context.Context, capability domain.Capability, departmentID, memberRef string, date time.Time) (int64, error)
	ListShiftsForRange(ctx context.Context, capability domain.Capability, query dto.ShiftRangeQuery) ([]domain.Shift, error)
	ListWorkTypes(ctx context.Context, capability domain.Capability, departmentID string) ([]string, error)
}

// ExportService renders filtered shift rows into the fixed-column CSV byte
// stream consumed by spreadsheet tools. Output is deterministic:
// byte-identical for identical storage state and filters.
type ExportService interface {
	ExportShifts(ctx context.Context, capability domain.Capability, query dto.ShiftRangeQuery) ([]byte, error)
}
