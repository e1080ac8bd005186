package model

// Role is the role code returned by the identity service.
type Role string

// Role codes as constants
const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERADOR"
	RoleViewer   Role = "CONSULTA"
)

// Privileges returns the privilege codes granted to the role. Unknown roles
// get none.
func (r Role) Privileges() []string {
	codes := rolePrivileges[r]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// Allows reports whether the role grants the given privilege code.
func (r Role) Allows(code string) bool {
	for _, c := range rolePrivileges[r] {
		if c == code {
			return true
		}
	}
	return false
}
