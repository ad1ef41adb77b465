// Package api is the wire surface of the users service: request and response
// messages, the JSON codec they travel in, the gRPC service descriptor and a
// typed client.
package api

import "time"

// User is the public view of a stored user. The password hash never leaves
// the server.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        *User     `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users      []*User `json:"users"`
	UsersCount int     `json:"users_count"`
}

type FindUserRequest struct {
	Username string `json:"username"`
}

type FindUserResponse struct {
	User *User `json:"user"`
}

// AddUserRequest creates a user with explicit roles. Admin only.
type AddUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type AddUserResponse struct {
	User *User `json:"user"`
}

type WhoamiRequest struct{}

// WhoamiResponse echoes the verified claims of the caller's token.
type WhoamiResponse struct {
	Subject   string    `json:"subject"`
	Roles     []string  `json:"roles"`
	Issuer    string    `json:"issuer"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ContentRequest struct{}

type ContentResponse struct {
	Content string `json:"content"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
