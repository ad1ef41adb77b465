// Package common defines the sentinel errors and constants shared by the
// server, the client and the storage layer. Callers should match these
// values with errors.Is.
package common

import "errors"

var (
	// Store-level classes. Repositories return these (possibly wrapped) so the
	// service layer can tell a uniqueness violation apart from other failures.
	ErrorNotFound      = errors.New("not found")
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrModelViolation  = errors.New("model constraint violation")

	// ErrStore marks any store failure not classified above.
	ErrStore = errors.New("store error")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Password hashing errors.
	ErrHashing       = errors.New("password hashing failed")
	ErrMalformedHash = errors.New("malformed password hash")

	// Token errors. ErrInvalidToken covers signature and claim verification
	// failures; expiry is reported separately.
	ErrTokenMalformed = errors.New("malformed token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
