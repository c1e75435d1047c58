package authz

import (
	"fmt"
	"strings"
)

// Role is the single role an account holds at any time.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleSeller     Role = "seller"
	RoleBuyer      Role = "buyer"
)

// String returns string representation of Role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSeller, RoleBuyer:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether r grants marketplace-wide administration.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// AssignableRoles returns the roles a role change may target. superadmin is
// never a transition target, it can only be seeded at account creation.
func AssignableRoles() []Role {
	return []Role{RoleAdmin, RoleBuyer, RoleSeller}
}

// ParseAssignableRole validates a requested role string against the
// assignable role set. The error message lists the valid roles so it can be
// surfaced to the caller verbatim.
func ParseAssignableRole(s string) (Role, error) {
	role := Role(s)
	for _, valid := range AssignableRoles() {
		if role == valid {
			return role, nil
		}
	}

	names := make([]string, 0, len(AssignableRoles()))
	for _, r := range AssignableRoles() {
		names = append(names, r.String())
	}

	return "", fmt.Errorf("invalid role, valid roles are: %s", strings.Join(names, ", "))
}
