// Package services contains server-side business logic. UserService is the
// registration and login flow plus the user queries exposed by the API.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
)

// PasswordHasher is implemented by *auth.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenIssuer is implemented by *auth.TokenService.
type TokenIssuer interface {
	Issue(subject string, roles []string) (string, *auth.Claims, error)
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User   *models.User
	Token  string
	Claims *auth.Claims
}

// UserService provides:
//   - Register / AddUser: create users with hashed passwords
//   - Login: verify credentials and issue an access token
//   - ListUsers / FindUser: read-only queries
//   - EnsureAdmin: idempotent seeding of the admin account
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
}

// NewUserService wires the service. db may be nil for backends that have no
// database, such as the in-memory one.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

func (s *UserService) users() users.Repository {
	return s.repomanager.Users(s.db)
}

// Register creates a user without roles. A taken username yields
// common.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.create(ctx, s.users(), username, email, password, nil)
}

// AddUser creates a user with the given roles. Callers gate it behind the
// admin requirement.
func (s *UserService) AddUser(ctx context.Context, username, email, password string, roles []string) (*models.User, error) {
	return s.create(ctx, s.users(), username, email, password, normalizeRoles(roles))
}

func (s *UserService) create(ctx context.Context, repo users.Repository, username, email, password string, roles []string) (*models.User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// hashing is the slow part; do not write for an abandoned request
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if roles == nil {
		roles = []string{}
	}
	user, err := repo.Create(ctx, &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
	})
	if err != nil {
		if errors.Is(err, common.ErrUniqueViolation) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: create user: %w", common.ErrStore, err)
	}

	return user, nil
}

// Login checks credentials and issues a token carrying the user's roles.
// A missing user yields common.ErrUnknownUser and a wrong password
// common.ErrInvalidCredentials; callers must not reveal the difference.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrInvalidArgument)
	}

	user, err := s.users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("%w: get user: %w", common.ErrStore, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}

	return &LoginResult{User: user, Token: token, Claims: claims}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	list, err := s.users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", common.ErrStore, err)
	}
	return list, nil
}

// FindUser looks a user up by username; a miss yields common.ErrUnknownUser.
func (s *UserService) FindUser(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrInvalidArgument)
	}

	user, err := s.users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("%w: get user: %w", common.ErrStore, err)
	}
	return user, nil
}

// EnsureAdmin creates the admin account unless a user with that name already
// exists. It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	created := false

	err := s.withUsers(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.GetUserByLogin(ctx, username)
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: get user: %w", common.ErrStore, err)
		}

		_, err = s.create(ctx, repo, username, email, password, []string{common.RoleAdmin})
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, common.ErrDuplicateUsername) {
		// lost a race with a concurrent seeder
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return created, nil
}

// withUsers runs fn inside a transaction when there is a database.
func (s *UserService) withUsers(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error {
	if s.db == nil {
		return fn(ctx, s.users())
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.repomanager.Users(tx))
	})
}

func validateRegistration(username, email, password string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return fmt.Errorf("%w: username is required", common.ErrInvalidArgument)
	case password == "":
		return fmt.Errorf("%w: password is required", common.ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", common.ErrInvalidArgument, email)
	}
	return nil
}

// normalizeRoles drops blanks and duplicates, keeping first-seen order.
func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" || slices.Contains(out, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
