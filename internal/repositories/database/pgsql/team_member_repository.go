package pgsql

import (
	"context"
	"errors"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTeamMemberRepository struct {
	BaseRepository
}

// newPgxTeamMemberRepository creates a new repository for team member data.
func newPgxTeamMemberRepository(pool *pgxpool.Pool) portsrepo.TeamMemberRepository {
	return &PgxTeamMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TeamMemberRepository = (*PgxTeamMemberRepository)(nil)

var FULL_TEAM_MEMBER_SELECT_QUERY = `
SELECT
	m.member_id, m.department_id, m.member_ref, m.display_name,
	m.created_at, m.last_updated_at
FROM team_members m
`

func (r *PgxTeamMemberRepository) getTeamMembers(ctx context.Context, filterQuery string, args ...any) ([]domain.TeamMember, error) {
	query := FULL_TEAM_MEMBER_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query team members", err)
	}
	defer rows.Close()
	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TeamMember])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TeamMember{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect team member rows", err)
	}
	return members, nil
}

func (r *PgxTeamMemberRepository) SaveTeamMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		INSERT INTO team_members (
			member_id, department_id, member_ref, display_name, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.DepartmentID,
		member.MemberRef,
		member.DisplayName,
		member.CreatedAt,
		member.LastUpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("member reference " + member.MemberRef + " already exists in this department")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("department does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save team member "+member.MemberID, err)
	}
	return nil
}

func (r *PgxTeamMemberRepository) FindTeamMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	query := `WHERE m.member_id = $1`
	members, err := r.getTeamMembers(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, apperrors.NewNotFoundError("team member " + memberID + " not found")
	}
	return &members[0], nil
}

func (r *PgxTeamMemberRepository) ListTeamMembersByDepartment(ctx context.Context, departmentID string) ([]domain.TeamMember, error) {
	query := `WHERE m.department_id = $1 ORDER BY m.member_ref`
	return r.getTeamMembers(ctx, query, departmentID)
}

// UpdateTeamMember rewrites the member row and refreshes the snapshot
// columns of every shift still referencing the member, in one transaction.
func (r *PgxTeamMemberRepository) UpdateTeamMember(ctx context.Context, member domain.TeamMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateMember := `
		UPDATE team_members
		SET member_ref = $2, display_name = $3, last_updated_at = $4
		WHERE member_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateMember,
		member.MemberID,
		member.MemberRef,
		member.DisplayName,
		member.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("member reference " + member.MemberRef + " already exists in this department")
		}
		return apperrors.NewAppError(500, "failed to update team member "+member.MemberID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team member " + member.MemberID + " not found")
	}

	refreshSnapshots := `
		UPDATE shifts
		SET member_ref = $2, member_name = $3
		WHERE member_id = $1;
	`
	if _, err := tx.Exec(ctx, refreshSnapshots, member.MemberID, member.MemberRef, member.DisplayName); err != nil {
		return apperrors.NewAppError(500, "failed to refresh shift snapshots for member "+member.MemberID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTeamMember removes the member row. The shifts FK is ON DELETE SET
// NULL, so historical rows keep their snapshot columns.
func (r *PgxTeamMemberRepository) DeleteTeamMember(ctx context.Context, memberID string) error {
	query := `DELETE FROM team_members WHERE member_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, memberID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete team member "+memberID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team member " + memberID + " not found")
	}
	return nil
}
