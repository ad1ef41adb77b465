package grpc

import (
	"context"

	"github.com/dmitrijs2005/usersvc/internal/api"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
)

func toAPIUser(u *models.User) *api.User {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &api.User{
		ID:        u.ID,
		Username:  u.UserName,
		Email:     u.Email,
		Roles:     roles,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request", "username", req.Username)

	user, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName, "id", user.ID)
	return &api.RegisterResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	res, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.loginStatus(ctx, err)
	}

	resp := &api.LoginResponse{User: toAPIUser(res.User), AccessToken: res.Token}
	if res.Claims != nil && res.Claims.ExpiresAt != nil {
		resp.ExpiresAt = res.Claims.ExpiresAt.Time
	}
	return resp, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	list, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "list users", err)
	}

	out := make([]*api.User, 0, len(list))
	for _, u := range list {
		out = append(out, toAPIUser(u))
	}
	return &api.ListUsersResponse{Users: out, UsersCount: len(out)}, nil
}

func (s *GRPCServer) FindUser(ctx context.Context, req *api.FindUserRequest) (*api.FindUserResponse, error) {
	user, err := s.users.FindUser(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, "find user", err)
	}
	return &api.FindUserResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) AddUser(ctx context.Context, req *api.AddUserRequest) (*api.AddUserResponse, error) {
	user, err := s.users.AddUser(ctx, req.Username, req.Email, req.Password, req.Roles)
	if err != nil {
		return nil, s.toStatus(ctx, "add user", err)
	}

	s.logger.Info(ctx, "User added", "username", user.UserName, "roles", user.Roles)
	return &api.AddUserResponse{User: toAPIUser(user)}, nil
}

// Whoami re-validates the caller's token and echoes its claims.
func (s *GRPCServer) Whoami(ctx context.Context, _ *api.WhoamiRequest) (*api.WhoamiResponse, error) {
	claims, err := s.policy.Authenticate(auth.FromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "whoami", err)
	}

	resp := &api.WhoamiResponse{Subject: claims.Subject, Roles: claims.Roles, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		resp.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}

func (s *GRPCServer) ContentForAll(context.Context, *api.ContentRequest) (*api.ContentResponse, error) {
	return &api.ContentResponse{Content: "Hello, all"}, nil
}

func (s *GRPCServer) ContentForUser(context.Context, *api.ContentRequest) (*api.ContentResponse, error) {
	return &api.ContentResponse{Content: "Hello, user"}, nil
}

func (s *GRPCServer) ContentForAdmin(context.Context, *api.ContentRequest) (*api.ContentResponse, error) {
	return &api.ContentResponse{Content: "Hello, admin"}, nil
}

func (s *GRPCServer) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}
