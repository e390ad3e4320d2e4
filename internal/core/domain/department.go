package domain

// Department is the root of a tenancy partition: every team member, shift and
// access link belongs to exactly one department.
type Department struct {
	DepartmentID string `json:"departmentID"` // Primary key (UUID)
	Name         string `json:"name"`         // Unique human-readable name
	AuditFields
}
