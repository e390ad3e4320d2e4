package services_test

import (
	"testing"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	"github.com/bahadricoz/shift/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func baseShift() domain.Shift {
	return domain.Shift{
		DepartmentID: "dept-1",
		MemberRef:    "TM-1",
		MemberName:   "Alice",
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		WorkType:     domain.WorkType{Name: domain.WorkTypeOffice},
		FoodPayment:  domain.FoodPaymentYes,
	}
}

func TestValidateAndNormalize_AllowsUpToTwoShiftsPerDay(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()

	_, err := rules.ValidateAndNormalize(nil, candidate)
	require.NoError(t, err)

	_, err = rules.ValidateAndNormalize([]domain.Shift{baseShift()}, candidate)
	require.NoError(t, err)
}

func TestValidateAndNormalize_RejectsThirdShift(t *testing.T) {
	rules := services.NewShiftRules()
	existing := []domain.Shift{baseShift(), baseShift()}

	_, err := rules.ValidateAndNormalize(existing, baseShift())

	require.Error(t, err)
	var violation *apperrors.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, apperrors.TooManyShiftsPerDay, violation.Reason)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateAndNormalize_EditedRowDoesNotCountAgainstItself(t *testing.T) {
	rules := services.NewShiftRules()
	first, second := baseShift(), baseShift()
	first.ShiftID, second.ShiftID = "s1", "s2"
	candidate := baseShift()
	candidate.ShiftID = "s1"

	_, err := rules.ValidateAndNormalize([]domain.Shift{first, second}, candidate)

	require.NoError(t, err)
}

func TestValidateAndNormalize_EditOntoFullDayRejected(t *testing.T) {
	rules := services.NewShiftRules()
	first, second := baseShift(), baseShift()
	first.ShiftID, second.ShiftID = "s1", "s2"
	candidate := baseShift()
	candidate.ShiftID = "s3"

	_, err := rules.ValidateAndNormalize([]domain.Shift{first, second}, candidate)

	require.Error(t, err)
	var violation *apperrors.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, apperrors.TooManyShiftsPerDay, violation.Reason)
}

func TestValidateAndNormalize_RejectsUnknownWorkType(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	candidate.WorkType = domain.WorkType{Name: "Gardening"}

	_, err := rules.ValidateAndNormalize(nil, candidate)

	var violation *apperrors.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, apperrors.InvalidWorkType, violation.Reason)
}

func TestValidateAndNormalize_AcceptsCustomWorkType(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	candidate.WorkType = domain.NewCustomWorkType("Inventory")

	normalized, err := rules.ValidateAndNormalize(nil, candidate)

	require.NoError(t, err)
	assert.Equal(t, "CUSTOM: Inventory", normalized.WorkType.Label())
}

func TestValidateAndNormalize_RejectsHalfOpenWindow(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	candidate.ShiftStart = timePtr(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	_, err := rules.ValidateAndNormalize(nil, candidate)

	var violation *apperrors.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, apperrors.IncompleteTimeWindow, violation.Reason)
}

func TestValidateAndNormalize_RejectsInvertedWindow(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	candidate.OvertimeStart = timePtr(time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC))
	candidate.OvertimeEnd = timePtr(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))

	_, err := rules.ValidateAndNormalize(nil, candidate)

	var violation *apperrors.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, apperrors.InvertedTimeWindow, violation.Reason)
}

func TestValidateAndNormalize_AllowsZeroLengthWindow(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	instant := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	candidate.ShiftStart = timePtr(instant)
	candidate.ShiftEnd = timePtr(instant)

	_, err := rules.ValidateAndNormalize(nil, candidate)

	require.NoError(t, err)
}

func TestValidateAndNormalize_NormalizesFoodPayment(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	candidate.FoodPayment = domain.FoodPayment(" yes ")

	normalized, err := rules.ValidateAndNormalize(nil, candidate)

	require.NoError(t, err)
	assert.Equal(t, domain.FoodPaymentYes, normalized.FoodPayment)
}

func TestValidateAndNormalize_RejectsBadFoodPayment(t *testing.T) {
	rules := services.NewShiftRules()
	candidate := baseShift()
	candidate.FoodPayment = domain.FoodPayment("MAYBE")

	_, err := rules.ValidateAndNormalize(nil, candidate)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseWorkType(t *testing.T) {
	rules := services.NewShiftRules()

	wt, err := rules.ParseWorkType("Office")
	require.NoError(t, err)
	assert.False(t, wt.Custom)
	assert.Equal(t, "Office", wt.Label())

	wt, err = rules.ParseWorkType("CUSTOM: Inventory")
	require.NoError(t, err)
	assert.True(t, wt.Custom)
	assert.Equal(t, "Inventory", wt.Name)

	_, err = rules.ParseWorkType("")
	require.Error(t, err)

	_, err = rules.ParseWorkType("Gardening")
	var violation *apperrors.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, apperrors.InvalidWorkType, violation.Reason)
}
