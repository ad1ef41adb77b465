// Package auth is the authentication and authorization core: password
// hashing, signed access tokens and the access policy gating protected
// operations. Nothing in here logs or touches storage.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer   = "https://www.acme.com"
	DefaultAudience = "https://acme-customer.com"
)

// Claims is the claim set carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// HasRole reports whether role is among the claimed roles.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// TokenConfig configures a TokenService. Issuer and Audience default to
// DefaultIssuer and DefaultAudience.
type TokenConfig struct {
	Secret   string
	Duration time.Duration
	Issuer   string
	Audience string
}

// TokenService issues and validates HS256 access tokens. It is safe for
// concurrent use; all fields are set at construction.
type TokenService struct {
	secret   []byte
	duration time.Duration
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenService fails on an empty secret or a lifetime shorter than the
// one second resolution of JWT timestamps.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if cfg.Duration < time.Second {
		return nil, fmt.Errorf("token duration %s is too short", cfg.Duration)
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	return &TokenService{
		secret:   []byte(cfg.Secret),
		duration: cfg.Duration,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Issue signs a new token for subject carrying roles. The returned claims are
// exactly what was signed.
func (s *TokenService) Issue(subject string, roles []string) (string, *Claims, error) {
	now := s.now().Truncate(time.Second)

	if roles == nil {
		roles = []string{}
	}
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
		Roles: slices.Clone(roles),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// Validate verifies the signature, issuer, audience and expiry of token and
// returns its claims. Failures wrap exactly one of common.ErrTokenMalformed,
// common.ErrInvalidToken or common.ErrTokenExpired; no claims are returned
// alongside an error.
func (s *TokenService) Validate(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Duration is the configured token lifetime.
func (s *TokenService) Duration() time.Duration { return s.duration }

func (s *TokenService) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, common.ErrInvalidToken
	}
	return s.secret, nil
}

// classify maps jwt errors onto the token error taxonomy. The signature is
// checked before the claims, so an expired token with a bad signature is
// reported as invalid.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", common.ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
}
