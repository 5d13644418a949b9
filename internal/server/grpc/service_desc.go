package grpc

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/rpc"
	"google.golang.org/grpc"
)

// AdapterServer is the server side of the authkeeper.v1.Adapter service.
type AdapterServer interface {
	CreateUser(context.Context, *rpc.CreateUserRequest) (*rpc.UserResponse, error)
	GetUser(context.Context, *rpc.GetUserRequest) (*rpc.UserResponse, error)
	GetUserByEmail(context.Context, *rpc.GetUserByEmailRequest) (*rpc.UserResponse, error)
	GetUserByAccount(context.Context, *rpc.GetUserByAccountRequest) (*rpc.UserResponse, error)
	UpdateUser(context.Context, *rpc.UpdateUserRequest) (*rpc.UserResponse, error)
	DeleteUser(context.Context, *rpc.DeleteUserRequest) (*rpc.Empty, error)
	LinkAccount(context.Context, *rpc.LinkAccountRequest) (*rpc.Empty, error)
	UnlinkAccount(context.Context, *rpc.UnlinkAccountRequest) (*rpc.Empty, error)
	CreateSession(context.Context, *rpc.CreateSessionRequest) (*rpc.SessionResponse, error)
	GetSessionAndUser(context.Context, *rpc.GetSessionAndUserRequest) (*rpc.SessionAndUserResponse, error)
	UpdateSession(context.Context, *rpc.UpdateSessionRequest) (*rpc.SessionResponse, error)
	DeleteSession(context.Context, *rpc.DeleteSessionRequest) (*rpc.Empty, error)
	CreateVerificationToken(context.Context, *rpc.CreateVerificationTokenRequest) (*rpc.VerificationTokenResponse, error)
	UseVerificationToken(context.Context, *rpc.UseVerificationTokenRequest) (*rpc.VerificationTokenResponse, error)
}

var _ AdapterServer = (*GRPCServer)(nil)

// unary builds the method descriptor for one RPC. It plays the part of the
// handler functions protoc would otherwise generate.
func unary[Req, Resp any](name string, call func(AdapterServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdapterServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: rpc.FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AdapterServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var adapterServiceDesc = grpc.ServiceDesc{
	ServiceName: rpc.ServiceName,
	HandlerType: (*AdapterServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(rpc.MethodCreateUser, AdapterServer.CreateUser),
		unary(rpc.MethodGetUser, AdapterServer.GetUser),
		unary(rpc.MethodGetUserByEmail, AdapterServer.GetUserByEmail),
		unary(rpc.MethodGetUserByAccount, AdapterServer.GetUserByAccount),
		unary(rpc.MethodUpdateUser, AdapterServer.UpdateUser),
		unary(rpc.MethodDeleteUser, AdapterServer.DeleteUser),
		unary(rpc.MethodLinkAccount, AdapterServer.LinkAccount),
		unary(rpc.MethodUnlinkAccount, AdapterServer.UnlinkAccount),
		unary(rpc.MethodCreateSession, AdapterServer.CreateSession),
		unary(rpc.MethodGetSessionAndUser, AdapterServer.GetSessionAndUser),
		unary(rpc.MethodUpdateSession, AdapterServer.UpdateSession),
		unary(rpc.MethodDeleteSession, AdapterServer.DeleteSession),
		unary(rpc.MethodCreateVerificationToken, AdapterServer.CreateVerificationToken),
		unary(rpc.MethodUseVerificationToken, AdapterServer.UseVerificationToken),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authkeeper/v1/adapter",
}
