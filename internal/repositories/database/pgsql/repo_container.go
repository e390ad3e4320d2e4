package pgsql

import (
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DepartmentRepo: newPgxDepartmentRepository(dbPool),
		TeamMemberRepo: newPgxTeamMemberRepository(dbPool),
		ShiftRepo:      newPgxShiftRepository(dbPool),
		AccessLinkRepo: newPgxAccessLinkRepository(dbPool),
	}
}
