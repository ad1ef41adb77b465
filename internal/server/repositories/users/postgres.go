package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation        = "23505"
	pgIntegrityViolationCode = "23"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	roles, err := encodeRoles(user.Roles)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (username, email, password_hash, roles)
		 VALUES ($1, $2, $3, $4::jsonb)
		 RETURNING id, active, created_at, updated_at
		 `

	created := *user
	err = r.db.QueryRowContext(ctx, query, user.UserName, user.Email, user.PasswordHash, roles).
		Scan(&created.ID, &created.Active, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapPostgresError(err)
	}
	if created.Roles == nil {
		created.Roles = []string{}
	}

	return &created, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, roles, active, created_at, updated_at
		 FROM users
		 WHERE username = $1
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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
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

// mapPostgresError classifies integrity violations; everything else is
// wrapped as a plain db error.
func mapPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrUniqueViolation, pgErr.Detail)
		case strings.HasPrefix(pgErr.Code, pgIntegrityViolationCode):
			return fmt.Errorf("%w: %s", common.ErrModelViolation, pgErr.Message)
		}
	}
	return fmt.Errorf("db error: %w", err)
}
