package services

import (
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/pkg/config"
)

// NewServiceContainer creates the service container with properly wired
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	rules := NewShiftRules()

	container := &portssvc.ServiceContainer{}
	container.Access = NewAccessControlService(repos.AccessLinkRepo, repos.DepartmentRepo, cfg.GlobalAdminToken)
	container.Department = NewDepartmentService(repos.DepartmentRepo)
	container.TeamMember = NewTeamMemberService(repos.TeamMemberRepo, repos.DepartmentRepo)
	container.Shift = NewShiftService(repos.ShiftRepo, repos.TeamMemberRepo, rules)
	container.Export = NewExportService(repos.ShiftRepo)
	return container
}
