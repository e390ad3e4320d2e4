package domain

import "time"

// Role is the access level an AccessLink grants over its department.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// AccessLink is a persisted, revocable bearer token granting a fixed
// capability over one department. Tokens are anonymous shared capabilities,
// not user identities; revocation is deletion of the row.
type AccessLink struct {
	LinkID       string    `json:"linkID"` // Primary key (UUID)
	Token        string    `json:"token"`  // Opaque 32-48 char random string, unique
	DepartmentID string    `json:"departmentID"`
	Role         Role      `json:"role"`
	Label        string    `json:"label"` // Human note, e.g. "Night crew | Admin"
	CreatedAt    time.Time `json:"createdAt"`
}

// Capability returns the capability this link resolves to.
func (l AccessLink) Capability() Capability {
	return Capability{Role: l.Role, DepartmentID: l.DepartmentID}
}
