package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "usersvc.UsersService"

// Full method names, as seen by interceptors.
const (
	MethodRegister        = "/" + ServiceName + "/Register"
	MethodLogin           = "/" + ServiceName + "/Login"
	MethodListUsers       = "/" + ServiceName + "/ListUsers"
	MethodFindUser        = "/" + ServiceName + "/FindUser"
	MethodAddUser         = "/" + ServiceName + "/AddUser"
	MethodWhoami          = "/" + ServiceName + "/Whoami"
	MethodContentForAll   = "/" + ServiceName + "/ContentForAll"
	MethodContentForUser  = "/" + ServiceName + "/ContentForUser"
	MethodContentForAdmin = "/" + ServiceName + "/ContentForAdmin"
	MethodPing            = "/" + ServiceName + "/Ping"
)

// UsersServiceServer is the server API for the users service.
type UsersServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	FindUser(context.Context, *FindUserRequest) (*FindUserResponse, error)
	AddUser(context.Context, *AddUserRequest) (*AddUserResponse, error)
	Whoami(context.Context, *WhoamiRequest) (*WhoamiResponse, error)
	ContentForAll(context.Context, *ContentRequest) (*ContentResponse, error)
	ContentForUser(context.Context, *ContentRequest) (*ContentResponse, error)
	ContentForAdmin(context.Context, *ContentRequest) (*ContentResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedUsersServiceServer can be embedded to satisfy
// UsersServiceServer; every method fails with codes.Unimplemented.
type UnimplementedUsersServiceServer struct{}

func (UnimplementedUsersServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedUsersServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedUsersServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedUsersServiceServer) FindUser(context.Context, *FindUserRequest) (*FindUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindUser not implemented")
}
func (UnimplementedUsersServiceServer) AddUser(context.Context, *AddUserRequest) (*AddUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddUser not implemented")
}
func (UnimplementedUsersServiceServer) Whoami(context.Context, *WhoamiRequest) (*WhoamiResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Whoami not implemented")
}
func (UnimplementedUsersServiceServer) ContentForAll(context.Context, *ContentRequest) (*ContentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ContentForAll not implemented")
}
func (UnimplementedUsersServiceServer) ContentForUser(context.Context, *ContentRequest) (*ContentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ContentForUser not implemented")
}
func (UnimplementedUsersServiceServer) ContentForAdmin(context.Context, *ContentRequest) (*ContentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ContentForAdmin not implemented")
}
func (UnimplementedUsersServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterUsersServiceServer(s grpc.ServiceRegistrar, srv UsersServiceServer) {
	s.RegisterService(&UsersService_ServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(UsersServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UsersServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UsersServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UsersService_ServiceDesc describes the service for grpc.Server.
var UsersService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UsersServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, UsersServiceServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, UsersServiceServer.Login)},
		{MethodName: "ListUsers", Handler: unary(MethodListUsers, UsersServiceServer.ListUsers)},
		{MethodName: "FindUser", Handler: unary(MethodFindUser, UsersServiceServer.FindUser)},
		{MethodName: "AddUser", Handler: unary(MethodAddUser, UsersServiceServer.AddUser)},
		{MethodName: "Whoami", Handler: unary(MethodWhoami, UsersServiceServer.Whoami)},
		{MethodName: "ContentForAll", Handler: unary(MethodContentForAll, UsersServiceServer.ContentForAll)},
		{MethodName: "ContentForUser", Handler: unary(MethodContentForUser, UsersServiceServer.ContentForUser)},
		{MethodName: "ContentForAdmin", Handler: unary(MethodContentForAdmin, UsersServiceServer.ContentForAdmin)},
		{MethodName: "Ping", Handler: unary(MethodPing, UsersServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "usersvc",
}
