package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores users in a SQLite database. IDs and timestamps are
// generated here since SQLite has no uuid or timestamptz defaults.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	roles, err := encodeRoles(user.Roles)
	if err != nil {
		return nil, err
	}

	created := *user
	created.ID = uuid.NewString()
	created.Active = true
	created.CreatedAt = r.now().UTC()
	created.UpdatedAt = created.CreatedAt
	if created.Roles == nil {
		created.Roles = []string{}
	}

	query :=
		`INSERT INTO users (id, username, email, password_hash, roles, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 `

	_, err = r.db.ExecContext(ctx, query,
		created.ID, created.UserName, created.Email, created.PasswordHash, roles,
		created.Active, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, mapSQLiteError(err)
	}

	return &created, nil
}

func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, roles, active, created_at, updated_at
		 FROM users
		 WHERE username = ?
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, roles, active, created_at, updated_at
		 FROM users
		 ORDER BY created_at, username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func mapSQLiteError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", common.ErrUniqueViolation, se.Error())
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// without extended result codes only the message tells unique apart
			if strings.Contains(se.Error(), "UNIQUE constraint failed") {
				return fmt.Errorf("%w: %s", common.ErrUniqueViolation, se.Error())
			}
			return fmt.Errorf("%w: %s", common.ErrModelViolation, se.Error())
		}
	}
	return fmt.Errorf("db error: %w", err)
}
