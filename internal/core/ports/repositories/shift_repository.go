package repositories

import (
	"context"
	"time"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// ShiftRangeFilter narrows a shift range query. DepartmentID and the
// inclusive date range are required; the remaining filters are optional
// (empty means no filtering).
type ShiftRangeFilter struct {
	DepartmentID string
	DateFrom     time.Time
	DateTo       time.Time
	MemberRefs   []string
	WorkTypes    []string
	FoodPayment  *domain.FoodPayment
}

// ShiftRepository is the storage gateway contract for shift rows.
type ShiftRepository interface {
	// CreateShift inserts atomically with respect to concurrent writers for
	// the same (department, member, date) key: the per-day count check and
	// the insert happen under one lock so two racing inserts can never
	// produce a third row.
	CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error)
	UpdateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error)
	FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)
	ListShiftsForMemberDate(ctx context.Context, departmentID, memberRef string, date time.Time) ([]domain.Shift, error)
	ListShiftsForRange(ctx context.Context, filter ShiftRangeFilter) ([]domain.Shift, error)
	DeleteShift(ctx context.Context, shiftID string) error
	DeleteShiftsForMemberDate(ctx context.Context, departmentID, memberRef string, date time.Time) (int64, error)
	ListDistinctWorkTypes(ctx context.Context, departmentID string) ([]string, error)
}
