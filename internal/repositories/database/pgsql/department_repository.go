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

type PgxDepartmentRepository struct {
	BaseRepository
}

// newPgxDepartmentRepository creates a new repository for department data.
func newPgxDepartmentRepository(pool *pgxpool.Pool) portsrepo.DepartmentRepository {
	return &PgxDepartmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DepartmentRepository = (*PgxDepartmentRepository)(nil)

var FULL_DEPARTMENT_SELECT_QUERY = `
SELECT
	d.department_id, d.name, d.created_at, d.last_updated_at
FROM departments d
`

func (r *PgxDepartmentRepository) getDepartments(ctx context.Context, filterQuery string, args ...any) ([]domain.Department, error) {
	query := FULL_DEPARTMENT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query departments", err)
	}
	defer rows.Close()
	departments, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Department])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Department{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect department rows", err)
	}
	return departments, nil
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	query := `
		INSERT INTO departments (department_id, name, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		department.Name,
		department.CreatedAt,
		department.LastUpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("department " + department.Name + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save department "+department.DepartmentID, err)
	}
	return nil
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `WHERE d.department_id = $1`
	departments, err := r.getDepartments(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return nil, apperrors.NewNotFoundError("department " + departmentID + " not found")
	}
	return &departments[0], nil
}

func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return r.getDepartments(ctx, `ORDER BY d.name`)
}

// DeleteDepartment removes the department row. Team members, shifts and
// access links all carry restricting foreign keys, so a referenced
// department comes back as a conflict instead of cascading away history.
func (r *PgxDepartmentRepository) DeleteDepartment(ctx context.Context, departmentID string) error {
	query := `DELETE FROM departments WHERE department_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, departmentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewConflictError("department " + departmentID + " is still referenced")
		}
		return apperrors.NewAppError(500, "failed to delete department "+departmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("department " + departmentID + " not found")
	}
	return nil
}
