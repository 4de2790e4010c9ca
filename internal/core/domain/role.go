package domain

import "fmt"

// Role is a privilege level. Roles are totally ordered; see AtLeast.
type Role string

const (
	RoleUser      Role = "user"
	RoleEmployee  Role = "employee"
	RoleAnnouncer Role = "announcer"
	RoleDev       Role = "dev"
	RoleAdmin     Role = "admin"
)

// roleOrder lists roles from least to most privileged. The index is the rank.
var roleOrder = []Role{RoleUser, RoleEmployee, RoleAnnouncer, RoleDev, RoleAdmin}

// Roles returns every role, least privileged first.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// Rank reports the privilege rank of r and whether r is a known role.
func (r Role) Rank() (int, bool) {
	for i, known := range roleOrder {
		if known == r {
			return i, true
		}
	}
	return -1, false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := r.Rank()
	return ok
}

// ParseRole converts s into a Role, failing with ErrUnknownRole.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// AtLeast reports whether candidate is ranked at or above required.
// Unknown roles on either side never satisfy a requirement.
func AtLeast(candidate, required Role) bool {
	c, ok := candidate.Rank()
	if !ok {
		return false
	}
	r, ok := required.Rank()
	if !ok {
		return false
	}
	return c >= r
}
