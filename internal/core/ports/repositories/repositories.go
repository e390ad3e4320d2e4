package repositories

// RepositoryProvider bundles all storage gateway implementations for
// injection into the service layer.
type RepositoryProvider struct {
	DepartmentRepo DepartmentRepository
	TeamMemberRepo TeamMemberRepository
	ShiftRepo      ShiftRepository
	AccessLinkRepo AccessLinkRepository
}
