package domain

// Capability is the access level resolved from a bearer token. The zero
// value means no access. The global form (Global=true) comes only from the
// operator-configured break-glass token, is not department-scoped, and is
// accepted exclusively by the access-link recovery operations, never by
// ordinary reads or writes.
type Capability struct {
	Role         Role   `json:"role"`
	DepartmentID string `json:"departmentID"`
	Global       bool   `json:"global"`
}

// HasAccess reports whether the capability grants anything at all.
func (c Capability) HasAccess() bool {
	return c.Global || c.Role == RoleAdmin || c.Role == RoleViewer
}

// CanView reports whether the capability may read data of the department.
func (c Capability) CanView(departmentID string) bool {
	if c.Global {
		return false
	}
	return (c.Role == RoleAdmin || c.Role == RoleViewer) && c.DepartmentID == departmentID
}

// CanManage reports whether the capability may mutate data of the department.
func (c Capability) CanManage(departmentID string) bool {
	if c.Global {
		return false
	}
	return c.Role == RoleAdmin && c.DepartmentID == departmentID
}

// CanRecoverAccessLinks reports whether the capability may use the
// break-glass access-link operations for the department.
func (c Capability) CanRecoverAccessLinks(departmentID string) bool {
	return c.Global || c.CanManage(departmentID)
}
