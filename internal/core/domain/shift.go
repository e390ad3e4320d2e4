package domain

import "time"

// FoodPayment is the two-valued meal payment flag, stored in its canonical
// string form.
type FoodPayment string

const (
	FoodPaymentYes FoodPayment = "YES"
	FoodPaymentNo  FoodPayment = "NO"
)

// Shift is one scheduled work record for a team member on a calendar date.
// MemberRef and MemberName are snapshotted at write time so the row keeps
// rendering after the member is deleted (MemberID then becomes nil).
type Shift struct {
	ShiftID       string      `json:"shiftID"`      // Primary key (UUID)
	DepartmentID  string      `json:"departmentID"` // FK -> departments
	MemberID      *string     `json:"memberID"`     // FK -> team_members, nil once the member was removed
	MemberRef     string      `json:"memberRef"`    // Snapshot of TeamMember.MemberRef
	MemberName    string      `json:"memberName"`   // Snapshot of TeamMember.DisplayName
	Date          time.Time   `json:"date"`         // Calendar day, no timezone semantics
	WorkType      WorkType    `json:"workType"`
	FoodPayment   FoodPayment `json:"foodPayment"`
	ShiftStart    *time.Time  `json:"shiftStart"`
	ShiftEnd      *time.Time  `json:"shiftEnd"`
	OvertimeStart *time.Time  `json:"overtimeStart"`
	OvertimeEnd   *time.Time  `json:"overtimeEnd"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// MaxShiftsPerMemberPerDay caps how many shift rows may share the same
// (department, member, date) key. Two models a legitimate split shift.
const MaxShiftsPerMemberPerDay = 2
