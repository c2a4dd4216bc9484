// Package entity contains the shop's business objects.
package entity

import "strings"

// Role is the access level of an account. Admins manage the catalog, orders and payments.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// ParseRole reads a stored role. Anything unrecognized is treated as an ordinary user.
func ParseRole(raw string) Role {
	if Role(strings.ToLower(strings.TrimSpace(raw))) == RoleAdmin {
		return RoleAdmin
	}

	return RoleUser
}

// Toggle flips between the ordinary and the privileged role.
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleUser
	}

	return RoleAdmin
}
