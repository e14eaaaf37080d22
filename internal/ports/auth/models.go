package auth

// Role de cuenta. Los providers (vet/walker/daycare) ofrecen servicios por hora.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleSeller  Role = "seller"
	RoleWalker  Role = "walker"
	RoleDaycare Role = "daycare"
	RoleVet     Role = "vet"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleWalker, RoleDaycare, RoleVet, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// IsProvider indica si el rol presta servicios agendables.
func (r Role) IsProvider() bool {
	return r == RoleVet || r == RoleWalker || r == RoleDaycare
}

// Claims es lo que viaja firmado dentro del token.
type Claims struct {
	UserID string
}

// Principal es el usuario ya resuelto contra el directorio (token -> user lookup).
type Principal struct {
	UserID string
	Role   Role
}
