package services

import (
	"strings"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
)

// ShiftRules validates and normalizes candidate shifts against the per-day,
// per-person constraints before anything reaches the storage gateway. It is
// pure: no I/O, no clock, no state.
type ShiftRules struct{}

// NewShiftRules creates the rules engine.
func NewShiftRules() *ShiftRules {
	return &ShiftRules{}
}

// ValidateAndNormalize checks the candidate against the existing rows for
// the same (department, member, date) key and returns the normalized record
// ready for persistence, or a typed rule violation.
//
// A candidate carrying a ShiftID is an edit. The row being edited never
// counts against the per-day cap, but every other row on the candidate's
// date does, so an edit that moves a shift onto an already full date is
// rejected like any insert.
func (r *ShiftRules) ValidateAndNormalize(existing []domain.Shift, candidate domain.Shift) (domain.Shift, error) {
	others := 0
	for i := range existing {
		if candidate.ShiftID != "" && existing[i].ShiftID == candidate.ShiftID {
			continue
		}
		others++
	}
	if others >= domain.MaxShiftsPerMemberPerDay {
		return domain.Shift{}, apperrors.NewRuleViolation(apperrors.TooManyShiftsPerDay,
			"member already has the maximum number of shifts on this date")
	}

	if candidate.WorkType.IsZero() {
		return domain.Shift{}, apperrors.NewRuleViolation(apperrors.InvalidWorkType, "work type must not be empty")
	}
	if !candidate.WorkType.Custom && !domain.IsPredefinedWorkType(candidate.WorkType.Name) {
		return domain.Shift{}, apperrors.NewRuleViolation(apperrors.InvalidWorkType,
			"unrecognized work type "+candidate.WorkType.Name)
	}

	if err := checkTimeWindow("shift", candidate.ShiftStart, candidate.ShiftEnd); err != nil {
		return domain.Shift{}, err
	}
	if err := checkTimeWindow("overtime", candidate.OvertimeStart, candidate.OvertimeEnd); err != nil {
		return domain.Shift{}, err
	}

	normalized, err := normalizeFoodPayment(string(candidate.FoodPayment))
	if err != nil {
		return domain.Shift{}, err
	}
	candidate.FoodPayment = normalized

	// Overlapping time windows between a member's two same-day shifts are
	// legitimate split shifts; only the count cap above constrains them.
	return candidate, nil
}

// ParseWorkType converts a serialized label into the in-memory variant,
// rejecting empty labels and unprefixed labels outside the predefined set.
func (r *ShiftRules) ParseWorkType(label string) (domain.WorkType, error) {
	wt, ok := domain.ParseWorkTypeLabel(label)
	if !ok {
		return domain.WorkType{}, apperrors.NewRuleViolation(apperrors.InvalidWorkType,
			"work type must be one of the predefined labels or carry the custom prefix")
	}
	return wt, nil
}

// checkTimeWindow enforces the both-or-neither pairing and forbids an end
// before its start. Equal instants pass: a zero-length window is degenerate
// but valid.
func checkTimeWindow(name string, start, end *time.Time) error {
	if (start == nil) != (end == nil) {
		return apperrors.NewRuleViolation(apperrors.IncompleteTimeWindow,
			name+" start and end must be both set or both empty")
	}
	if start != nil && end.Before(*start) {
		return apperrors.NewRuleViolation(apperrors.InvertedTimeWindow,
			name+" end precedes its start")
	}
	return nil
}

func normalizeFoodPayment(value string) (domain.FoodPayment, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(domain.FoodPaymentYes):
		return domain.FoodPaymentYes, nil
	case string(domain.FoodPaymentNo):
		return domain.FoodPaymentNo, nil
	default:
		return "", apperrors.NewValidationFailedError("food payment must be YES or NO")
	}
}
