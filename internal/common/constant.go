package common

const (
	// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
	AccessTokenHeaderName = "access_token"

	// AuthorizationHeaderName is accepted as an alternative carrier in the
	// "Bearer <token>" form.
	AuthorizationHeaderName = "authorization"

	// RoleAdmin grants access to administrative operations.
	RoleAdmin = "admin"
)
