package domain

// TeamMember is an employee within a department. MemberRef is the
// human-assigned identifier (unique within the department) and is distinct
// from the storage surrogate MemberID.
type TeamMember struct {
	MemberID     string `json:"memberID"`     // Primary key (UUID)
	DepartmentID string `json:"departmentID"` // FK -> departments
	MemberRef    string `json:"memberRef"`    // Caller-supplied id, unique per department
	DisplayName  string `json:"displayName"`
	AuditFields
}
