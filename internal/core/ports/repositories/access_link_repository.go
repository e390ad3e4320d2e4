package repositories

import (
	"context"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// AccessLinkRepository is the storage gateway contract for bearer tokens.
type AccessLinkRepository interface {
	SaveAccessLink(ctx context.Context, link domain.AccessLink) error
	FindAccessLinkByToken(ctx context.Context, token string) (*domain.AccessLink, error)
	FindAccessLinkByID(ctx context.Context, linkID string) (*domain.AccessLink, error)
	ListAccessLinksByDepartment(ctx context.Context, departmentID string) ([]domain.AccessLink, error)
	DeleteAccessLink(ctx context.Context, linkID string) error
	CountAccessLinks(ctx context.Context) (int64, error)
}
