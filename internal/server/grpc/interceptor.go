package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/api"
	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

// methodRequirements gates every method. Methods missing here require admin.
var methodRequirements = map[string]auth.Requirement{
	api.MethodRegister:        auth.Public,
	api.MethodLogin:           auth.Public,
	api.MethodFindUser:        auth.Public,
	api.MethodContentForAll:   auth.Public,
	api.MethodPing:            auth.Public,
	api.MethodListUsers:       auth.Authenticated,
	api.MethodWhoami:          auth.Authenticated,
	api.MethodContentForUser:  auth.Authenticated,
	api.MethodAddUser:         auth.Admin,
	api.MethodContentForAdmin: auth.Admin,
}

func requirementFor(fullMethod string) auth.Requirement {
	if r, ok := methodRequirements[fullMethod]; ok {
		return r
	}
	return auth.Admin
}

// tokenFromMetadata prefers access_token and falls back to an
// "authorization: Bearer ..." header.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		return auth.BearerToken(values[0])
	}
	return ""
}

// accessInterceptor evaluates the method's requirement and hands the
// AuthContext to the handler. An expired or invalid token counts as no token.
func (s *GRPCServer) accessInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ac := auth.AuthContext{Token: tokenFromMetadata(ctx)}
	required := requirementFor(info.FullMethod)

	if !s.policy.Allows(ac, required) {
		if required == auth.Admin && s.policy.IsAuthenticated(ac) {
			s.logger.Warn(ctx, "admin role required", "method", info.FullMethod)
			return nil, status.Error(codes.PermissionDenied, "permission denied")
		}
		s.logger.Debug(ctx, "access denied", "method", info.FullMethod, "requirement", required.String(), "token_present", ac.HasToken())
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	return handler(auth.WithAuthContext(ctx, ac), req)
}

// loggingInterceptor tags each call with a request id, echoed back in the
// x-request-id response header, and logs its outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDHeader); len(values) > 0 {
			requestID = values[0]
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "request",
		"method", info.FullMethod,
		"request_id", requestID,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
