package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/bahadricoz/shift/internal/utils"
	"github.com/google/uuid"
)

// AccessControlService resolves bearer tokens to capabilities and manages
// access links. Resolution is a stateless lookup over the access_links
// table plus one reserved out-of-band value; nothing is cached, so
// revocation takes effect on the next request.
type AccessControlService struct {
	accessLinkRepo   portsrepo.AccessLinkRepository
	departmentRepo   portsrepo.DepartmentRepository
	globalAdminToken string
}

// NewAccessControlService creates the access control component.
// globalAdminToken is the operator-configured break-glass value; empty
// disables the global capability entirely.
func NewAccessControlService(ar portsrepo.AccessLinkRepository, dr portsrepo.DepartmentRepository, globalAdminToken string) portssvc.AccessService {
	return &AccessControlService{
		accessLinkRepo:   ar,
		departmentRepo:   dr,
		globalAdminToken: globalAdminToken,
	}
}

var _ portssvc.AccessService = (*AccessControlService)(nil)

// ResolveToken maps a bearer token to its capability. Absent or unknown
// tokens resolve to the zero capability, not an error.
func (s *AccessControlService) ResolveToken(ctx context.Context, token string) (domain.Capability, error) {
	if token == "" {
		return domain.Capability{}, nil
	}
	if s.globalAdminToken != "" && token == s.globalAdminToken {
		return domain.Capability{Global: true}, nil
	}

	link, err := retryReadOnce(func() (*domain.AccessLink, error) {
		return s.accessLinkRepo.FindAccessLinkByToken(ctx, token)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Capability{}, nil
		}
		return domain.Capability{}, fmt.Errorf("failed to resolve token: %w", err)
	}
	return link.Capability(), nil
}

// IssueAccessLink mints a new bearer token for a department. Permitted for
// an admin of that department and for the global break-glass capability.
func (s *AccessControlService) IssueAccessLink(ctx context.Context, capability domain.Capability, departmentID string, role domain.Role, label string) (*domain.AccessLink, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanRecoverAccessLinks(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot issue access links for this department")
	}
	if role != domain.RoleAdmin && role != domain.RoleViewer {
		return nil, apperrors.NewValidationFailedError("role must be admin or viewer")
	}

	if _, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID); err != nil {
		return nil, err
	}

	link, err := s.mintLink(ctx, departmentID, role, label)
	if err != nil {
		logger.Error("Failed to issue access link", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return nil, err
	}

	logger.Info("Access link issued", slog.String("link_id", link.LinkID), slog.String("department_id", departmentID), slog.String("role", string(role)))
	return link, nil
}

// RevokeAccessLink deletes a token. Rotation is revoke plus reissue; a
// token never changes its department scope.
func (s *AccessControlService) RevokeAccessLink(ctx context.Context, capability domain.Capability, departmentID, linkID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanManage(departmentID) {
		return apperrors.NewForbiddenError("capability cannot revoke access links for this department")
	}

	link, err := s.accessLinkRepo.FindAccessLinkByID(ctx, linkID)
	if err != nil {
		return err
	}
	if link.DepartmentID != departmentID {
		return apperrors.NewNotFoundError("access link not found in this department")
	}

	if err := s.accessLinkRepo.DeleteAccessLink(ctx, linkID); err != nil {
		logger.Error("Failed to revoke access link", slog.String("error", err.Error()), slog.String("link_id", linkID))
		return err
	}

	logger.Info("Access link revoked", slog.String("link_id", linkID), slog.String("department_id", departmentID))
	return nil
}

// ListAccessLinks lists the tokens of a department, including their values:
// links are shareable capabilities that admins re-display.
func (s *AccessControlService) ListAccessLinks(ctx context.Context, capability domain.Capability, departmentID string) ([]domain.AccessLink, error) {
	if !capability.CanRecoverAccessLinks(departmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot list access links for this department")
	}

	links, err := retryReadOnce(func() ([]domain.AccessLink, error) {
		return s.accessLinkRepo.ListAccessLinksByDepartment(ctx, departmentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list access links for department %s: %w", departmentID, err)
	}
	if links == nil {
		links = []domain.AccessLink{}
	}
	return links, nil
}

// Bootstrap creates the first department together with its initial admin
// and viewer links. It is open while zero access links exist; afterwards
// only the global break-glass capability may call it.
func (s *AccessControlService) Bootstrap(ctx context.Context, capability domain.Capability, departmentName string) (*domain.Department, []domain.AccessLink, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.Global {
		count, err := s.accessLinkRepo.CountAccessLinks(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count access links: %w", err)
		}
		if count > 0 {
			return nil, nil, apperrors.NewForbiddenError("bootstrap is closed once access links exist")
		}
	}

	now := time.Now()
	department := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         departmentName,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		logger.Error("Failed to save bootstrap department", slog.String("error", err.Error()), slog.String("name", departmentName))
		return nil, nil, err
	}

	links := make([]domain.AccessLink, 0, 2)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleViewer} {
		link, err := s.mintLink(ctx, department.DepartmentID, role, departmentName+" | "+string(role))
		if err != nil {
			return nil, nil, err
		}
		links = append(links, *link)
	}

	logger.Info("Bootstrap completed", slog.String("department_id", department.DepartmentID))
	return &department, links, nil
}

func (s *AccessControlService) mintLink(ctx context.Context, departmentID string, role domain.Role, label string) (*domain.AccessLink, error) {
	token, err := utils.GenerateAccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	link := domain.AccessLink{
		LinkID:       uuid.NewString(),
		Token:        token,
		DepartmentID: departmentID,
		Role:         role,
		Label:        label,
		CreatedAt:    time.Now(),
	}
	if err := s.accessLinkRepo.SaveAccessLink(ctx, link); err != nil {
		return nil, err
	}
	return &link, nil
}
