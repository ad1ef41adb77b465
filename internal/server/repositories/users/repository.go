// Package users is the user store: the Repository interface consumed by the
// service layer and its PostgreSQL, SQLite and in-memory implementations.
package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
)

// Repository persists users.
//
// Create inserts a user and returns it with ID and timestamps filled in. It
// fails with common.ErrUniqueViolation when the username is taken and with
// common.ErrModelViolation for any other constraint violation; the insert is
// a single statement, so no partial row is ever left behind.
//
// GetUserByLogin returns common.ErrorNotFound when no such user exists.
//
// List returns every user ordered by creation time.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

func encodeRoles(roles []string) (string, error) {
	if roles == nil {
		roles = []string{}
	}
	b, err := json.Marshal(roles)
	if err != nil {
		return "", fmt.Errorf("encode roles: %w", err)
	}
	return string(b), nil
}

func decodeRoles(raw []byte) ([]string, error) {
	roles := []string{}
	if len(raw) == 0 {
		return roles, nil
	}
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u     models.User
		roles []byte
	)
	if err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &roles, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	r, err := decodeRoles(roles)
	if err != nil {
		return nil, err
	}
	u.Roles = r
	return &u, nil
}
