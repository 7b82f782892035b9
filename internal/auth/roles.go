package auth

// Role is an API caller role. Roles are strictly ordered:
// viewer < operator < admin.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

// NormalizeRole validates a role string from a token claim.
func NormalizeRole(value string) (Role, bool) {
	role := Role(value)
	_, ok := roleRank[role]
	if !ok {
		return "", false
	}
	return role, true
}

// RoleAtLeast reports whether role meets or exceeds required.
func RoleAtLeast(role, required Role) bool {
	return roleRank[role] >= roleRank[required]
}
