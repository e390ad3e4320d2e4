package services

// ServiceContainer bundles all service facades for injection into handlers.
type ServiceContainer struct {
	Access     AccessService
	Department DepartmentService
	TeamMember TeamMemberService
	Shift      ShiftService
	Export     ExportService
}
