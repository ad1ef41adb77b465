package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client-facing messages. Unknown user and wrong password share one.
const (
	msgInvalidCredentials = "invalid credentials"
	msgUnauthenticated    = "unauthenticated"
	msgInternal           = "internal error"
)

// toStatus maps a service error to a gRPC status. Unclassified errors are
// logged here and reported as a bare Internal.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrDuplicateUsername):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateUsername.Error())
	case errors.Is(err, common.ErrUnknownUser):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, msgUnauthenticated)
	}

	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, msgInternal)
}

// loginStatus hides whether the username exists.
func (s *GRPCServer) loginStatus(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrUnknownUser) || errors.Is(err, common.ErrInvalidCredentials) {
		s.logger.Info(ctx, "login rejected")
		return status.Error(codes.Unauthenticated, msgInvalidCredentials)
	}
	return s.toStatus(ctx, "login", err)
}
