package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/google/uuid"
)

// ShiftSvc coordinates the rules engine and the storage gateway for shift
// rows. All business validation lives in ShiftRules; this layer adds
// authorization, member resolution and snapshotting.
type ShiftSvc struct {
	shiftRepo      portsrepo.ShiftRepository
	teamMemberRepo portsrepo.TeamMemberRepository
	rules          *ShiftRules
}

// NewShiftService creates a new ShiftSvc.
func NewShiftService(sr portsrepo.ShiftRepository, tr portsrepo.TeamMemberRepository, rules *ShiftRules) portssvc.ShiftService {
	return &ShiftSvc{shiftRepo: sr, teamMemberRepo: tr, rules: rules}
}

var _ portssvc.ShiftService = (*ShiftSvc)(nil)

// UpsertShift creates a new shift or edits one in place, depending on
// whether input.ShiftID is set. The member's reference and display name are
// snapshotted into the row at write time.
func (s *ShiftSvc) UpsertShift(ctx context.Context, capability domain.Capability, input dto.UpsertShiftInput) (*domain.Shift, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(input.DepartmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot manage shifts in this department")
	}

	workType, err := s.rules.ParseWorkType(input.WorkType)
	if err != nil {
		return nil, err
	}

	member, err := s.teamMemberRepo.FindTeamMemberByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if member.DepartmentID != input.DepartmentID {
		return nil, apperrors.NewNotFoundError("team member not found in this department")
	}

	editing := input.ShiftID != nil
	var current *domain.Shift
	if editing {
		current, err = s.shiftRepo.FindShiftByID(ctx, *input.ShiftID)
		if err != nil {
			return nil, err
		}
		if current.DepartmentID != input.DepartmentID {
			return nil, apperrors.NewNotFoundError("shift not found in this department")
		}
	}

	existing, err := retryReadOnce(func() ([]domain.Shift, error) {
		return s.shiftRepo.ListShiftsForMemberDate(ctx, input.DepartmentID, member.MemberRef, input.Date)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts for member %s: %w", member.MemberRef, err)
	}

	candidate := domain.Shift{
		DepartmentID:  input.DepartmentID,
		MemberID:      &member.MemberID,
		MemberRef:     member.MemberRef,
		MemberName:    member.DisplayName,
		Date:          input.Date,
		WorkType:      workType,
		FoodPayment:   domain.FoodPayment(input.FoodPayment),
		ShiftStart:    input.ShiftStart,
		ShiftEnd:      input.ShiftEnd,
		OvertimeStart: input.OvertimeStart,
		OvertimeEnd:   input.OvertimeEnd,
	}

	if editing {
		candidate.ShiftID = current.ShiftID
		candidate.CreatedAt = current.CreatedAt
	}

	candidate, err = s.rules.ValidateAndNormalize(existing, candidate)
	if err != nil {
		logger.Warn("Shift rejected by rules", slog.String("error", err.Error()), slog.String("member_ref", member.MemberRef))
		return nil, err
	}

	var saved *domain.Shift
	if editing {
		saved, err = s.shiftRepo.UpdateShift(ctx, candidate)
	} else {
		candidate.ShiftID = uuid.NewString()
		saved, err = s.shiftRepo.CreateShift(ctx, candidate)
	}
	if err != nil {
		logger.Error("Failed to persist shift", slog.String("error", err.Error()), slog.String("shift_id", candidate.ShiftID))
		return nil, err
	}

	logger.Info("Shift saved",
		slog.String("shift_id", saved.ShiftID),
		slog.String("department_id", saved.DepartmentID),
		slog.String("member_ref", saved.MemberRef),
		slog.Bool("editing", editing))
	return saved, nil
}

// DeleteShift removes a single shift row.
func (s *ShiftSvc) DeleteShift(ctx context.Context, capability domain.Capability, departmentID, shiftID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return apperrors.NewForbiddenError("capability cannot manage shifts in this department")
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if shift.DepartmentID != departmentID {
		return apperrors.NewNotFoundError("shift not found in this department")
	}

	if err := s.shiftRepo.DeleteShift(ctx, shiftID); err != nil {
		logger.Error("Failed to delete shift", slog.String("error", err.Error()), slog.String("shift_id", shiftID))
		return err
	}

	logger.Info("Shift deleted", slog.String("shift_id", shiftID), slog.String("department_id", departmentID))
	return nil
}

// DeleteShiftsForMemberDate clears every shift of one member on one date and
// reports how many rows went away. Zero is a valid outcome, not an error.
func (s *ShiftSvc) DeleteShiftsForMemberDate(ctx context.Context, capability domain.Capability, departmentID, memberRef string, date time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return 0, apperrors.NewForbiddenError("capability cannot manage shifts in this department")
	}

	deleted, err := s.shiftRepo.DeleteShiftsForMemberDate(ctx, departmentID, memberRef, date)
	if err != nil {
		logger.Error("Failed to delete shifts for member date", slog.String("error", err.Error()), slog.String("member_ref", memberRef))
		return 0, err
	}

	logger.Info("Shifts cleared for member date",
		slog.String("department_id", departmentID),
		slog.String("member_ref", memberRef),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// ListShiftsForRange returns shifts matching the query, in the same
// deterministic order the export uses.
func (s *ShiftSvc) ListShiftsForRange(ctx context.Context, capability domain.Capability, query dto.ShiftRangeQuery) ([]domain.Shift, error) {
	if !capability.CanView(query.DepartmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot view this department")
	}

	filter, err := buildRangeFilter(query)
	if err != nil {
		return nil, err
	}

	shifts, err := retryReadOnce(func() ([]domain.Shift, error) {
		return s.shiftRepo.ListShiftsForRange(ctx, filter)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for department %s: %w", query.DepartmentID, err)
	}
	if shifts == nil {
		shifts = []domain.Shift{}
	}
	sortShiftsForOutput(shifts)
	return shifts, nil
}

// ListWorkTypes returns the predefined work types plus every distinct custom
// label already stored for the department, for use in entry form dropdowns.
func (s *ShiftSvc) ListWorkTypes(ctx context.Context, capability domain.Capability, departmentID string) ([]string, error) {
	if !capability.CanView(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot view this department")
	}

	stored, err := retryReadOnce(func() ([]string, error) {
		return s.shiftRepo.ListDistinctWorkTypes(ctx, departmentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list work types for department %s: %w", departmentID, err)
	}

	labels := make([]string, 0, len(domain.PredefinedWorkTypes)+len(stored))
	labels = append(labels, domain.PredefinedWorkTypes...)
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	for _, l := range stored {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	return labels, nil
}

// buildRangeFilter translates the transport-level query into the repository
// filter, validating the date range and the food payment selector.
func buildRangeFilter(query dto.ShiftRangeQuery) (portsrepo.ShiftRangeFilter, error) {
	if query.To.Before(query.From) {
		return portsrepo.ShiftRangeFilter{}, apperrors.NewValidationFailedError("date range end precedes its start")
	}

	filter := portsrepo.ShiftRangeFilter{
		DepartmentID: query.DepartmentID,
		DateFrom:     query.From,
		DateTo:       query.To,
		MemberRefs:   query.MemberRefs,
		WorkTypes:    query.WorkTypes,
	}

	switch query.FoodPayment {
	case "", "ALL":
	case string(domain.FoodPaymentYes):
		fp := domain.FoodPaymentYes
		filter.FoodPayment = &fp
	case string(domain.FoodPaymentNo):
		fp := domain.FoodPaymentNo
		filter.FoodPayment = &fp
	default:
		return portsrepo.ShiftRangeFilter{}, apperrors.NewValidationFailedError("food payment filter must be ALL, YES or NO")
	}
	return filter, nil
}
