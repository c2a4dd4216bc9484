// Package service declares the collaborators the use cases call out to.
package service

// PasswordHasher turns account passwords into stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check is false for any mismatch, including a malformed hash.
	Check(password, hash string) bool
}
