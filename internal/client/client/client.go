// Package client is the gRPC client of the users service. It attaches the
// access token to every call and maps status codes to sentinel errors that
// callers match with errors.Is.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usersvc/internal/api"
	"github.com/dmitrijs2005/usersvc/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Level selects one of the content endpoints.
type Level string

const (
	LevelAll   Level = "all"
	LevelUser  Level = "user"
	LevelAdmin Level = "admin"
)

type GRPCClient struct {
	conn        *grpc.ClientConn
	client      api.UsersServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(ctx context.Context, method string, req, reply any,
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// New dials endpoint lazily; nothing is sent until the first call.
func New(endpoint string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewUsersServiceClient(conn)
	return c, nil
}

// SetToken sets the token sent with subsequent calls.
func (s *GRPCClient) SetToken(token string) { s.accessToken = token }

func (s *GRPCClient) Token() string { return s.accessToken }

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var sentinel error
	switch st.Code() {
	case codes.Unavailable:
		sentinel = ErrUnavailable
	case codes.Unauthenticated:
		sentinel = ErrUnauthenticated
	case codes.PermissionDenied:
		sentinel = ErrPermissionDenied
	case codes.AlreadyExists:
		sentinel = ErrAlreadyExists
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.InvalidArgument:
		sentinel = ErrInvalidArgument
	default:
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

// Login authenticates and keeps the returned token for later calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.accessToken = resp.AccessToken
	return resp, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]*api.User, error) {
	resp, err := s.client.ListUsers(ctx, &api.ListUsersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

func (s *GRPCClient) FindUser(ctx context.Context, username string) (*api.User, error) {
	resp, err := s.client.FindUser(ctx, &api.FindUserRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) AddUser(ctx context.Context, username, email, password string, roles []string) (*api.User, error) {
	resp, err := s.client.AddUser(ctx, &api.AddUserRequest{Username: username, Email: email, Password: password, Roles: roles})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) Whoami(ctx context.Context) (*api.WhoamiResponse, error) {
	resp, err := s.client.Whoami(ctx, &api.WhoamiRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Content(ctx context.Context, level Level) (string, error) {
	var (
		resp *api.ContentResponse
		err  error
	)
	switch level {
	case LevelAll:
		resp, err = s.client.ContentForAll(ctx, &api.ContentRequest{})
	case LevelUser:
		resp, err = s.client.ContentForUser(ctx, &api.ContentRequest{})
	case LevelAdmin:
		resp, err = s.client.ContentForAdmin(ctx, &api.ContentRequest{})
	default:
		return "", fmt.Errorf("%w: unknown content level %q", ErrInvalidArgument, level)
	}
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return fmt.Errorf("unexpected ping status %q", resp.Status)
	}
	return nil
}
