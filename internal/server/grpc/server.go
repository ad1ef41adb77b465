// Package grpc is the boundary of the users service: it authenticates
// requests, enforces per-method access requirements and maps domain errors
// to gRPC status codes.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/usersvc/internal/api"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
	"google.golang.org/grpc"
)

// userService is implemented by *services.UserService.
type userService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	FindUser(ctx context.Context, username string) (*models.User, error)
	AddUser(ctx context.Context, username, email, password string, roles []string) (*models.User, error)
}

type GRPCServer struct {
	api.UnimplementedUsersServiceServer
	address string
	users   userService
	policy  *auth.AccessPolicy
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us userService, policy *auth.AccessPolicy) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		policy:  policy,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessInterceptor))
	api.RegisterUsersServiceServer(srv, s)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
