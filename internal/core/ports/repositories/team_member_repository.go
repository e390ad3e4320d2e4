package repositories

import (
	"context"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// TeamMemberRepository is the storage gateway contract for team members.
type TeamMemberRepository interface {
	SaveTeamMember(ctx context.Context, member domain.TeamMember) error
	FindTeamMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error)
	ListTeamMembersByDepartment(ctx context.Context, departmentID string) ([]domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, member domain.TeamMember) error
	// DeleteTeamMember removes the member row; historical shifts keep their
	// snapshot columns and get a NULL member reference.
	DeleteTeamMember(ctx context.Context, memberID string) error
}
