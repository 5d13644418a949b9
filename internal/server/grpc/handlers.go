package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts an adapter error into a gRPC status. Unexpected errors
// are logged and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorLostUpdate):
		return status.Error(codes.Aborted, err.Error())
	}

	s.logger.Error(ctx, "adapter call failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) CreateUser(ctx context.Context, req *rpc.CreateUserRequest) (*rpc.UserResponse, error) {
	u, err := s.adapter.CreateUser(ctx, req.User)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodCreateUser, err)
	}
	s.logger.Info(ctx, "User created", "id", u.ID)
	return &rpc.UserResponse{User: u}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *rpc.GetUserRequest) (*rpc.UserResponse, error) {
	u, err := s.adapter.GetUser(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetUser, err)
	}
	return &rpc.UserResponse{User: u}, nil
}

func (s *GRPCServer) GetUserByEmail(ctx context.Context, req *rpc.GetUserByEmailRequest) (*rpc.UserResponse, error) {
	u, err := s.adapter.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetUserByEmail, err)
	}
	return &rpc.UserResponse{User: u}, nil
}

func (s *GRPCServer) GetUserByAccount(ctx context.Context, req *rpc.GetUserByAccountRequest) (*rpc.UserResponse, error) {
	u, err := s.adapter.GetUserByAccount(ctx, req.Provider, req.ProviderAccountID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetUserByAccount, err)
	}
	return &rpc.UserResponse{User: u}, nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.UserResponse, error) {
	u, err := s.adapter.UpdateUser(ctx, req.User)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUpdateUser, err)
	}
	return &rpc.UserResponse{User: u}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *rpc.DeleteUserRequest) (*rpc.Empty, error) {
	if err := s.adapter.DeleteUser(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, rpc.MethodDeleteUser, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) LinkAccount(ctx context.Context, req *rpc.LinkAccountRequest) (*rpc.Empty, error) {
	if err := s.adapter.LinkAccount(ctx, req.Account); err != nil {
		return nil, s.toStatus(ctx, rpc.MethodLinkAccount, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) UnlinkAccount(ctx context.Context, req *rpc.UnlinkAccountRequest) (*rpc.Empty, error) {
	if err := s.adapter.UnlinkAccount(ctx, req.Provider, req.ProviderAccountID); err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUnlinkAccount, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) CreateSession(ctx context.Context, req *rpc.CreateSessionRequest) (*rpc.SessionResponse, error) {
	sess, err := s.adapter.CreateSession(ctx, req.Session)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodCreateSession, err)
	}
	return &rpc.SessionResponse{Session: sess}, nil
}

func (s *GRPCServer) GetSessionAndUser(ctx context.Context, req *rpc.GetSessionAndUserRequest) (*rpc.SessionAndUserResponse, error) {
	su, err := s.adapter.GetSessionAndUser(ctx, req.SessionToken)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetSessionAndUser, err)
	}
	return &rpc.SessionAndUserResponse{Result: su}, nil
}

func (s *GRPCServer) UpdateSession(ctx context.Context, req *rpc.UpdateSessionRequest) (*rpc.SessionResponse, error) {
	sess, err := s.adapter.UpdateSession(ctx, req.Session)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUpdateSession, err)
	}
	return &rpc.SessionResponse{Session: sess}, nil
}

func (s *GRPCServer) DeleteSession(ctx context.Context, req *rpc.DeleteSessionRequest) (*rpc.Empty, error) {
	if err := s.adapter.DeleteSession(ctx, req.SessionToken); err != nil {
		return nil, s.toStatus(ctx, rpc.MethodDeleteSession, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) CreateVerificationToken(ctx context.Context, req *rpc.CreateVerificationTokenRequest) (*rpc.VerificationTokenResponse, error) {
	t, err := s.adapter.CreateVerificationToken(ctx, req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodCreateVerificationToken, err)
	}
	return &rpc.VerificationTokenResponse{Token: t}, nil
}

func (s *GRPCServer) UseVerificationToken(ctx context.Context, req *rpc.UseVerificationTokenRequest) (*rpc.VerificationTokenResponse, error) {
	t, err := s.adapter.UseVerificationToken(ctx, req.Identifier, req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUseVerificationToken, err)
	}
	return &rpc.VerificationTokenResponse{Token: t}, nil
}
