package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/usersvc/internal/common"
)

// TokenValidator is the part of TokenService the policy needs.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// AuthContext is the per-request authentication state built by the boundary
// layer. Token is the presented token, empty when none was sent.
type AuthContext struct {
	Token string
}

// HasToken reports whether a token was presented.
func (a AuthContext) HasToken() bool { return a.Token != "" }

// Requirement is the access level an operation demands.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// AccessPolicy decides whether a request may proceed. Every evaluation
// re-validates the token, so a token that expires while a request is in
// flight stops authorizing from that moment on.
type AccessPolicy struct {
	tokens TokenValidator
}

func NewAccessPolicy(tokens TokenValidator) *AccessPolicy {
	return &AccessPolicy{tokens: tokens}
}

// Authenticate validates the presented token and returns its claims.
// A missing token is reported as common.ErrorUnauthorized.
func (p *AccessPolicy) Authenticate(ac AuthContext) (*Claims, error) {
	if !ac.HasToken() {
		return nil, common.ErrorUnauthorized
	}
	return p.tokens.Validate(ac.Token)
}

func (p *AccessPolicy) IsAuthenticated(ac AuthContext) bool {
	_, err := p.Authenticate(ac)
	return err == nil
}

// IsAdmin is true only for an authenticated context whose claims carry the
// admin role.
func (p *AccessPolicy) IsAdmin(ac AuthContext) bool {
	claims, err := p.Authenticate(ac)
	if err != nil {
		return false
	}
	return claims.HasRole(common.RoleAdmin)
}

// Allows evaluates a requirement against ac.
func (p *AccessPolicy) Allows(ac AuthContext, r Requirement) bool {
	switch r {
	case Public:
		return true
	case Authenticated:
		return p.IsAuthenticated(ac)
	case Admin:
		return p.IsAdmin(ac)
	default:
		return false
	}
}

// BearerToken strips an optional "Bearer " prefix from an authorization value.
func BearerToken(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return v
}

type authContextKey struct{}

// WithAuthContext stores ac in ctx for downstream handlers.
func WithAuthContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// FromContext returns the AuthContext stored by WithAuthContext, or an empty
// one.
func FromContext(ctx context.Context) AuthContext {
	ac, _ := ctx.Value(authContextKey{}).(AuthContext)
	return ac
}
