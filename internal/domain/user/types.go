package user

// Role values match the role column and the JWT role claim.
type Role string

const (
	RoleCustomer Role = "user"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role may run shop-side operations such as shipping an
// order, recording a cash payment or adjusting points.
func (r Role) IsStaff() bool {
	return r == RoleAdmin
}
