// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate, place orders and pay for them.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	FullName     string    // The user's display name.
	Email        string    // Unique, stored lowercased.
	Username     string    // Unique, stored lowercased. Either this or Email can be used to log in.
	PasswordHash string    // bcrypt hash of the password. Never serialized.
	Role         Role      // user or admin.
	AvatarURL    string    // Durable URL returned by the upload collaborator.
	CoverURL     string    // Optional cover image URL.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// IsAdmin reports whether the user holds the privileged role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
