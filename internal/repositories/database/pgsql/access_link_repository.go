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

type PgxAccessLinkRepository struct {
	BaseRepository
}

// newPgxAccessLinkRepository creates a new repository for access link data.
func newPgxAccessLinkRepository(pool *pgxpool.Pool) portsrepo.AccessLinkRepository {
	return &PgxAccessLinkRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccessLinkRepository = (*PgxAccessLinkRepository)(nil)

var FULL_ACCESS_LINK_SELECT_QUERY = `
SELECT
	l.link_id, l.token, l.department_id, l.role, l.label, l.created_at
FROM access_links l
`

func (r *PgxAccessLinkRepository) getAccessLinks(ctx context.Context, filterQuery string, args ...any) ([]domain.AccessLink, error) {
	query := FULL_ACCESS_LINK_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query access links", err)
	}
	defer rows.Close()
	links, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.AccessLink])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AccessLink{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect access link rows", err)
	}
	return links, nil
}

func (r *PgxAccessLinkRepository) SaveAccessLink(ctx context.Context, link domain.AccessLink) error {
	query := `
		INSERT INTO access_links (link_id, token, department_id, role, label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		link.LinkID,
		link.Token,
		link.DepartmentID,
		link.Role,
		link.Label,
		link.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("access link " + link.LinkID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("department does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save access link "+link.LinkID, err)
	}
	return nil
}

func (r *PgxAccessLinkRepository) FindAccessLinkByToken(ctx context.Context, token string) (*domain.AccessLink, error) {
	query := `WHERE l.token = $1`
	links, err := r.getAccessLinks(ctx, query, token)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &links[0], nil
}

func (r *PgxAccessLinkRepository) FindAccessLinkByID(ctx context.Context, linkID string) (*domain.AccessLink, error) {
	query := `WHERE l.link_id = $1`
	links, err := r.getAccessLinks(ctx, query, linkID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, apperrors.NewNotFoundError("access link " + linkID + " not found")
	}
	return &links[0], nil
}

func (r *PgxAccessLinkRepository) ListAccessLinksByDepartment(ctx context.Context, departmentID string) ([]domain.AccessLink, error) {
	query := `WHERE l.department_id = $1 ORDER BY l.created_at`
	return r.getAccessLinks(ctx, query, departmentID)
}

func (r *PgxAccessLinkRepository) DeleteAccessLink(ctx context.Context, linkID string) error {
	query := `DELETE FROM access_links WHERE link_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, linkID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete access link "+linkID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("access link " + linkID + " not found")
	}
	return nil
}

func (r *PgxAccessLinkRepository) CountAccessLinks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM access_links;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count access links", err)
	}
	return count, nil
}
