package model

// Role is the authorization level of a user. There are exactly two:
// admins manage users and approve products, staff manage their own catalog.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}
