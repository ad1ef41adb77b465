package models

import "time"

// User is a stored user account. PasswordHash is an encoded argon2id hash and
// is never empty for a persisted user. Roles defaults to an empty slice.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Roles        []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
