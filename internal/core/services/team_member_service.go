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

// TeamMemberSvc manages the employees of a department.
type TeamMemberSvc struct {
	teamMemberRepo portsrepo.TeamMemberRepository
	departmentRepo portsrepo.DepartmentRepository
}

// NewTeamMemberService creates a new TeamMemberSvc.
func NewTeamMemberService(tr portsrepo.TeamMemberRepository, dr portsrepo.DepartmentRepository) portssvc.TeamMemberService {
	return &TeamMemberSvc{teamMemberRepo: tr, departmentRepo: dr}
}

var _ portssvc.TeamMemberService = (*TeamMemberSvc)(nil)

// AddTeamMember registers a new member under a department. memberRef is the
// human-facing identifier and must be unique within the department; the
// storage layer turns a duplicate into a conflict.
func (s *TeamMemberSvc) AddTeamMember(ctx context.Context, capability domain.Capability, departmentID, memberRef, displayName string) (*domain.TeamMember, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot manage team members in this department")
	}

	memberRef = strings.TrimSpace(memberRef)
	displayName = strings.TrimSpace(displayName)
	if memberRef == "" || displayName == "" {
		return nil, apperrors.NewValidationFailedError("member reference and display name must not be empty")
	}

	if _, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID); err != nil {
		return nil, err
	}

	now := time.Now()
	member := domain.TeamMember{
		MemberID:     uuid.NewString(),
		DepartmentID: departmentID,
		MemberRef:    memberRef,
		DisplayName:  displayName,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.teamMemberRepo.SaveTeamMember(ctx, member); err != nil {
		logger.Error("Failed to save team member", slog.String("error", err.Error()), slog.String("member_ref", memberRef))
		return nil, err
	}

	logger.Info("Team member added", slog.String("member_id", member.MemberID), slog.String("department_id", departmentID))
	return &member, nil
}

// EditTeamMember updates a member's reference and display name. Shift rows
// still pointing at the member get their snapshot columns refreshed in the
// same transaction, so listings and exports stay consistent.
func (s *TeamMemberSvc) EditTeamMember(ctx context.Context, capability domain.Capability, departmentID, memberID, memberRef, displayName string) (*domain.TeamMember, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot manage team members in this department")
	}

	memberRef = strings.TrimSpace(memberRef)
	displayName = strings.TrimSpace(displayName)
	if memberRef == "" || displayName == "" {
		return nil, apperrors.NewValidationFailedError("member reference and display name must not be empty")
	}

	member, err := s.teamMemberRepo.FindTeamMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.DepartmentID != departmentID {
		return nil, apperrors.NewNotFoundError("team member not found in this department")
	}

	member.MemberRef = memberRef
	member.DisplayName = displayName
	member.LastUpdatedAt = time.Now()

	if err := s.teamMemberRepo.UpdateTeamMember(ctx, *member); err != nil {
		logger.Error("Failed to update team member", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to update team member %s: %w", memberID, err)
	}

	logger.Info("Team member updated", slog.String("member_id", memberID), slog.String("department_id", departmentID))
	return member, nil
}

// RemoveTeamMember deletes a member. Historical shift rows survive: they
// keep their snapshot columns and lose only the live member reference.
func (s *TeamMemberSvc) RemoveTeamMember(ctx context.Context, capability domain.Capability, departmentID, memberID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return apperrors.NewForbiddenError("capability cannot manage team members in this department")
	}

	member, err := s.teamMemberRepo.FindTeamMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.DepartmentID != departmentID {
		return apperrors.NewNotFoundError("team member not found in this department")
	}

	if err := s.teamMemberRepo.DeleteTeamMember(ctx, memberID); err != nil {
		logger.Error("Failed to delete team member", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return err
	}

	logger.Info("Team member removed", slog.String("member_id", memberID), slog.String("department_id", departmentID))
	return nil
}

// ListTeamMembers lists the members of a department ordered by reference.
func (s *TeamMemberSvc) ListTeamMembers(ctx context.Context, capability domain.Capability, departmentID string) ([]domain.TeamMember, error) {
	if !capability.CanView(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot view this department")
	}

	members, err := retryReadOnce(func() ([]domain.TeamMember, error) {
		return s.teamMemberRepo.ListTeamMembersByDepartment(ctx, departmentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list team members for department %s: %w", departmentID, err)
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	return members, nil
}
