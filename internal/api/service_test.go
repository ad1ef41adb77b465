package api

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type pingOnly struct {
	UnimplementedUsersServiceServer
}

func (pingOnly) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (pingOnly) FindUser(_ context.Context, in *FindUserRequest) (*FindUserResponse, error) {
	return &FindUserResponse{User: &User{
		Username:  in.Username,
		Roles:     []string{"admin"},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}, nil
}

func dial(t *testing.T, opts ...grpc.ServerOption) UsersServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	RegisterUsersServiceServer(srv, pingOnly{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewUsersServiceClient(conn)
}

func TestClientServer_RoundTrip(t *testing.T) {
	c := dial(t)
	ctx := context.Background()

	pong, err := c.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	found, err := c.FindUser(ctx, &FindUserRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", found.User.Username)
	assert.Equal(t, []string{"admin"}, found.User.Roles)
	assert.True(t, found.User.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestClientServer_Unimplemented(t *testing.T) {
	c := dial(t)

	_, err := c.Register(context.Background(), &RegisterRequest{Username: "alice"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestClientServer_InterceptorSeesFullMethod(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	c := dial(t, grpc.UnaryInterceptor(func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		mu.Lock()
		seen = append(seen, info.FullMethod)
		mu.Unlock()
		if _, ok := req.(*FindUserRequest); ok {
			return nil, status.Error(codes.PermissionDenied, "nope")
		}
		return handler(ctx, req)
	}))

	_, err := c.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	_, err = c.FindUser(context.Background(), &FindUserRequest{Username: "alice"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{MethodPing, MethodFindUser}, seen)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	var req LoginRequest
	require.NoError(t, c.Unmarshal(nil, &req))
	assert.Equal(t, LoginRequest{}, req)

	err := c.Unmarshal([]byte(`{"username":`), &req)
	assert.ErrorContains(t, err, "json codec")

	_, err = c.Marshal(make(chan int))
	assert.Error(t, err)
}
