package pgsql

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxShiftRepository struct {
	BaseRepository
}

// newPgxShiftRepository creates a new repository for shift data.
func newPgxShiftRepository(pool *pgxpool.Pool) portsrepo.ShiftRepository {
	return &PgxShiftRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ShiftRepository = (*PgxShiftRepository)(nil)

var FULL_SHIFT_SELECT_QUERY = `
SELECT
	s.shift_id, s.department_id, s.member_id, s.member_ref, s.member_name,
	s.shift_date, s.work_type, s.food_payment,
	s.shift_start, s.shift_end, s.overtime_start, s.overtime_end,
	s.created_at, s.updated_at
FROM shifts s
`

// scanShift reads one row in FULL_SHIFT_SELECT_QUERY column order. The work
// type column stores the serialized label, so the tagged variant is rebuilt
// here rather than by struct mapping.
func scanShift(row pgx.Row) (*domain.Shift, error) {
	var s domain.Shift
	var workTypeLabel string
	err := row.Scan(
		&s.ShiftID,
		&s.DepartmentID,
		&s.MemberID,
		&s.MemberRef,
		&s.MemberName,
		&s.Date,
		&workTypeLabel,
		&s.FoodPayment,
		&s.ShiftStart,
		&s.ShiftEnd,
		&s.OvertimeStart,
		&s.OvertimeEnd,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	wt, ok := domain.ParseWorkTypeLabel(workTypeLabel)
	if !ok {
		return nil, fmt.Errorf("stored work type %q is not parseable", workTypeLabel)
	}
	s.WorkType = wt
	return &s, nil
}

func (r *PgxShiftRepository) getShifts(ctx context.Context, filterQuery string, args ...any) ([]domain.Shift, error) {
	query := FULL_SHIFT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query shifts", err)
	}
	defer rows.Close()

	shifts := []domain.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan shift row", err)
		}
		shifts = append(shifts, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read shift rows", err)
	}
	return shifts, nil
}

// memberDayLockKey derives the advisory lock key guarding one
// (department, member, date) insert slot.
func memberDayLockKey(departmentID, memberRef string, date time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", departmentID, memberRef, date.Format("2006-01-02"))
	return int64(h.Sum64())
}

// CreateShift inserts under a transaction-scoped advisory lock on the
// (department, member, date) key. The recount inside the lock means two
// racing inserts for a full day can never both commit.
func (r *PgxShiftRepository) CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockKey := memberDayLockKey(shift.DepartmentID, shift.MemberRef, shift.Date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, lockKey); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire shift slot lock", err)
	}

	var count int
	countQuery := `
		SELECT COUNT(*) FROM shifts
		WHERE department_id = $1 AND member_ref = $2 AND shift_date = $3;
	`
	if err := tx.QueryRow(ctx, countQuery, shift.DepartmentID, shift.MemberRef, shift.Date).Scan(&count); err != nil {
		return nil, apperrors.NewAppError(500, "failed to count shifts for slot", err)
	}
	if count >= domain.MaxShiftsPerMemberPerDay {
		return nil, apperrors.NewRuleViolation(apperrors.TooManyShiftsPerDay,
			"member already has the maximum number of shifts on this date")
	}

	insertQuery := `
		INSERT INTO shifts (
			shift_id, department_id, member_id, member_ref, member_name,
			shift_date, work_type, food_payment,
			shift_start, shift_end, overtime_start, overtime_end,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING created_at, updated_at;
	`
	err = tx.QueryRow(ctx, insertQuery,
		shift.ShiftID,
		shift.DepartmentID,
		shift.MemberID,
		shift.MemberRef,
		shift.MemberName,
		shift.Date,
		shift.WorkType.Label(),
		shift.FoodPayment,
		shift.ShiftStart,
		shift.ShiftEnd,
		shift.OvertimeStart,
		shift.OvertimeEnd,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, apperrors.NewConflictError("shift " + shift.ShiftID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return nil, apperrors.NewValidationFailedError("department or team member does not exist")
			}
		}
		return nil, apperrors.NewAppError(500, "failed to save shift "+shift.ShiftID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &shift, nil
}

// UpdateShift rewrites a shift row under the same advisory lock discipline
// as CreateShift. An edit can move the row onto another (department, member,
// date) slot, so the destination slot is recounted inside the lock with the
// row itself excluded before the update commits.
func (r *PgxShiftRepository) UpdateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockKey := memberDayLockKey(shift.DepartmentID, shift.MemberRef, shift.Date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, lockKey); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire shift slot lock", err)
	}

	var count int
	countQuery := `
		SELECT COUNT(*) FROM shifts
		WHERE department_id = $1 AND member_ref = $2 AND shift_date = $3 AND shift_id <> $4;
	`
	if err := tx.QueryRow(ctx, countQuery, shift.DepartmentID, shift.MemberRef, shift.Date, shift.ShiftID).Scan(&count); err != nil {
		return nil, apperrors.NewAppError(500, "failed to count shifts for slot", err)
	}
	if count >= domain.MaxShiftsPerMemberPerDay {
		return nil, apperrors.NewRuleViolation(apperrors.TooManyShiftsPerDay,
			"member already has the maximum number of shifts on this date")
	}

	query := `
		UPDATE shifts
		SET member_id = $2, member_ref = $3, member_name = $4,
			shift_date = $5, work_type = $6, food_payment = $7,
			shift_start = $8, shift_end = $9, overtime_start = $10, overtime_end = $11,
			updated_at = now()
		WHERE shift_id = $1
		RETURNING created_at, updated_at;
	`
	err = tx.QueryRow(ctx, query,
		shift.ShiftID,
		shift.MemberID,
		shift.MemberRef,
		shift.MemberName,
		shift.Date,
		shift.WorkType.Label(),
		shift.FoodPayment,
		shift.ShiftStart,
		shift.ShiftEnd,
		shift.OvertimeStart,
		shift.OvertimeEnd,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("shift " + shift.ShiftID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to update shift "+shift.ShiftID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	query := FULL_SHIFT_SELECT_QUERY + `WHERE s.shift_id = $1`
	s, err := scanShift(r.Pool.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("shift " + shiftID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find shift "+shiftID, err)
	}
	return s, nil
}

func (r *PgxShiftRepository) ListShiftsForMemberDate(ctx context.Context, departmentID, memberRef string, date time.Time) ([]domain.Shift, error) {
	query := `WHERE s.department_id = $1 AND s.member_ref = $2 AND s.shift_date = $3 ORDER BY s.shift_start NULLS LAST, s.shift_id`
	return r.getShifts(ctx, query, departmentID, memberRef, date)
}

func (r *PgxShiftRepository) ListShiftsForRange(ctx context.Context, filter portsrepo.ShiftRangeFilter) ([]domain.Shift, error) {
	query := `WHERE s.department_id = $1 AND s.shift_date BETWEEN $2 AND $3`
	args := []any{filter.DepartmentID, filter.DateFrom, filter.DateTo}

	if len(filter.MemberRefs) > 0 {
		args = append(args, filter.MemberRefs)
		query += fmt.Sprintf(" AND s.member_ref = ANY($%d)", len(args))
	}
	if len(filter.WorkTypes) > 0 {
		args = append(args, filter.WorkTypes)
		query += fmt.Sprintf(" AND s.work_type = ANY($%d)", len(args))
	}
	if filter.FoodPayment != nil {
		args = append(args, *filter.FoodPayment)
		query += fmt.Sprintf(" AND s.food_payment = $%d", len(args))
	}
	query += ` ORDER BY s.shift_date, s.member_ref, s.shift_start NULLS LAST, s.shift_id`

	return r.getShifts(ctx, query, args...)
}

func (r *PgxShiftRepository) DeleteShift(ctx context.Context, shiftID string) error {
	query := `DELETE FROM shifts WHERE shift_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, shiftID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete shift "+shiftID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("shift " + shiftID + " not found")
	}
	return nil
}

func (r *PgxShiftRepository) DeleteShiftsForMemberDate(ctx context.Context, departmentID, memberRef string, date time.Time) (int64, error) {
	query := `DELETE FROM shifts WHERE department_id = $1 AND member_ref = $2 AND shift_date = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, departmentID, memberRef, date)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete shifts for member "+memberRef, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxShiftRepository) ListDistinctWorkTypes(ctx context.Context, departmentID string) ([]string, error) {
	query := `
		SELECT DISTINCT work_type FROM shifts
		WHERE department_id = $1
		ORDER BY work_type;
	`
	rows, err := r.Pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query work types", err)
	}
	defer rows.Close()
	labels, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect work type rows", err)
	}
	return labels, nil
}
