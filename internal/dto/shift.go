package dto

import (
	"time"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// Canonical wire layouts for calendar days and shift timestamps.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// UpsertShiftRequest is the HTTP payload for creating or editing a shift.
// Timestamps use DateTimeLayout; a pair must be both set or both empty.
type UpsertShiftRequest struct {
	MemberID      string  `json:"memberID" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	WorkType      string  `json:"workType" binding:"required"`
	FoodPayment   string  `json:"foodPayment" binding:"required,foodpayment"`
	ShiftStart    *string `json:"shiftStart"`
	ShiftEnd      *string `json:"shiftEnd"`
	OvertimeStart *string `json:"overtimeStart"`
	OvertimeEnd   *string `json:"overtimeEnd"`
}

// UpsertShiftInput is the parsed service-level form of UpsertShiftRequest.
// A nil ShiftID means create; a set one means edit-in-place.
type UpsertShiftInput struct {
	ShiftID       *string
	DepartmentID  string
	MemberID      string
	Date          time.Time
	WorkType      string // serialized label, custom ones carrying the prefix
	FoodPayment   string
	ShiftStart    *time.Time
	ShiftEnd      *time.Time
	OvertimeStart *time.Time
	OvertimeEnd   *time.Time
}

// ShiftRangeQuery narrows shift listing and export. DepartmentID and the
// inclusive date range are required; empty sets mean no filtering.
// FoodPayment is ALL, YES or NO.
type ShiftRangeQuery struct {
	DepartmentID string
	From         time.Time
	To           time.Time
	MemberRefs   []string
	WorkTypes    []string
	FoodPayment  string
}

// ShiftResponse is the API representation of a shift row.
type ShiftResponse struct {
	ShiftID       string  `json:"shiftID"`
	DepartmentID  string  `json:"departmentID"`
	MemberID      *string `json:"memberID"`
	MemberRef     string  `json:"teamMemberID"`
	MemberName    string  `json:"teamMember"`
	Date          string  `json:"date"`
	WorkType      string  `json:"workType"`
	FoodPayment   string  `json:"foodPayment"`
	ShiftStart    *string `json:"shiftStart"`
	ShiftEnd      *string `json:"shiftEnd"`
	OvertimeStart *string `json:"overtimeStart"`
	OvertimeEnd   *string `json:"overtimeEnd"`
}

// ListShiftsResponse wraps a list of shifts.
type ListShiftsResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateTimeLayout)
	return &s
}

func ToShiftResponse(s *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ShiftID:       s.ShiftID,
		DepartmentID:  s.DepartmentID,
		MemberID:      s.MemberID,
		MemberRef:     s.MemberRef,
		MemberName:    s.MemberName,
		Date:          s.Date.Format(DateLayout),
		WorkType:      s.WorkType.Label(),
		FoodPayment:   string(s.FoodPayment),
		ShiftStart:    formatOptional(s.ShiftStart),
		ShiftEnd:      formatOptional(s.ShiftEnd),
		OvertimeStart: formatOptional(s.OvertimeStart),
		OvertimeEnd:   formatOptional(s.OvertimeEnd),
	}
}

func ToListShiftsResponse(shifts []domain.Shift) ListShiftsResponse {
	resp := ListShiftsResponse{Shifts: make([]ShiftResponse, 0, len(shifts))}
	for i := range shifts {
		resp.Shifts = append(resp.Shifts, ToShiftResponse(&shifts[i]))
	}
	return resp
}
