package models

import "fmt"

// Role is the closed set of employee roles. The lowercase value is what the
// employees.role column and session tokens carry.
type Role string

const (
	RoleTeacher   Role = "teacher"
	RolePrincipal Role = "principal"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTeacher, RolePrincipal:
		return true
	default:
		return false
	}
}

// ParseRole converts a stored or transmitted value into a Role.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}
