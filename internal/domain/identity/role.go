package identity

import (
	"strings"

	"github.com/wms/backend/internal/domain/shared"
)

// Role is the closed set of access levels in the system.
// Roles are strictly ordered: admin covers staff, staff covers member.
type Role string

const (
	RoleMember Role = "member" // Read-only access
	RoleStaff  Role = "staff"  // Can create and edit documents
	RoleAdmin  Role = "admin"  // Can approve, deny and convert
)

var roleRank = map[Role]int{
	RoleMember: 1,
	RoleStaff:  2,
	RoleAdmin:  3,
}

// ParseRole parses a role string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be one of: member, staff, admin")
	}
	return role, nil
}

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Covers returns true if this role satisfies the required role.
// A higher role always covers a lower one.
func (r Role) Covers(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}
