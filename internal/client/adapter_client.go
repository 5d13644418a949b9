// Package client is a Go client for the adapter's gRPC surface. It
// implements services.Adapter, so a remote adapter can be used wherever the
// in-process one is.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/rpc"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var _ services.Adapter = (*AdapterClient)(nil)

type AdapterClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *AdapterClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, c.accessToken), method, req, reply, cc, opts...)
}

// NewAdapterClient connects to endpointURL and authenticates every call
// with accessToken. Extra dial options are appended to the defaults
// (plaintext transport). Adapter calls use the JSON codec.
func NewAdapterClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*AdapterClient, error) {
	c := &AdapterClient{endpointURL: endpointURL, accessToken: accessToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *AdapterClient) Close() error {
	return c.conn.Close()
}

func (c *AdapterClient) invoke(ctx context.Context, method string, req, reply any) error {
	return mapError(c.conn.Invoke(ctx, rpc.FullMethod(method), req, reply, grpc.CallContentSubtype(rpc.CodecName)))
}

// Ping asks the server's health service whether the adapter is serving.
func (c *AdapterClient) Ping(ctx context.Context) error {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: rpc.ServiceName})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

// mapError turns gRPC statuses back into the sentinel errors the
// in-process adapter returns.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorInvalidID, st.Message())
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.Aborted:
		return common.ErrorLostUpdate
	case codes.Unauthenticated, codes.PermissionDenied:
		if st.Message() == common.ErrTokenExpired.Error() {
			return errors.Join(common.ErrorUnauthorized, common.ErrTokenExpired)
		}
		return common.ErrorUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (c *AdapterClient) CreateUser(ctx context.Context, user services.NewUser) (*services.AdapterUser, error) {
	resp := &rpc.UserResponse{}
	if err := c.invoke(ctx, rpc.MethodCreateUser, &rpc.CreateUserRequest{User: user}, resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *AdapterClient) GetUser(ctx context.Context, id string) (*services.AdapterUser, error) {
	resp := &rpc.UserResponse{}
	if err := c.invoke(ctx, rpc.MethodGetUser, &rpc.GetUserRequest{ID: id}, resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *AdapterClient) GetUserByEmail(ctx context.Context, email string) (*services.AdapterUser, error) {
	resp := &rpc.UserResponse{}
	if err := c.invoke(ctx, rpc.MethodGetUserByEmail, &rpc.GetUserByEmailRequest{Email: email}, resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *AdapterClient) GetUserByAccount(ctx context.Context, provider, providerAccountID string) (*services.AdapterUser, error) {
	resp := &rpc.UserResponse{}
	req := &rpc.GetUserByAccountRequest{Provider: provider, ProviderAccountID: providerAccountID}
	if err := c.invoke(ctx, rpc.MethodGetUserByAccount, req, resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *AdapterClient) UpdateUser(ctx context.Context, update services.UserUpdate) (*services.AdapterUser, error) {
	resp := &rpc.UserResponse{}
	if err := c.invoke(ctx, rpc.MethodUpdateUser, &rpc.UpdateUserRequest{User: update}, resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *AdapterClient) DeleteUser(ctx context.Context, id string) error {
	return c.invoke(ctx, rpc.MethodDeleteUser, &rpc.DeleteUserRequest{ID: id}, &rpc.Empty{})
}

func (c *AdapterClient) LinkAccount(ctx context.Context, account services.AdapterAccount) error {
	return c.invoke(ctx, rpc.MethodLinkAccount, &rpc.LinkAccountRequest{Account: account}, &rpc.Empty{})
}

func (c *AdapterClient) UnlinkAccount(ctx context.Context, provider, providerAccountID string) error {
	req := &rpc.UnlinkAccountRequest{Provider: provider, ProviderAccountID: providerAccountID}
	return c.invoke(ctx, rpc.MethodUnlinkAccount, req, &rpc.Empty{})
}

func (c *AdapterClient) CreateSession(ctx context.Context, session services.AdapterSession) (*services.AdapterSession, error) {
	resp := &rpc.SessionResponse{}
	if err := c.invoke(ctx, rpc.MethodCreateSession, &rpc.CreateSessionRequest{Session: session}, resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

func (c *AdapterClient) GetSessionAndUser(ctx context.Context, sessionToken string) (*services.SessionAndUser, error) {
	resp := &rpc.SessionAndUserResponse{}
	if err := c.invoke(ctx, rpc.MethodGetSessionAndUser, &rpc.GetSessionAndUserRequest{SessionToken: sessionToken}, resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (c *AdapterClient) UpdateSession(ctx context.Context, update services.SessionUpdate) (*services.AdapterSession, error) {
	resp := &rpc.SessionResponse{}
	if err := c.invoke(ctx, rpc.MethodUpdateSession, &rpc.UpdateSessionRequest{Session: update}, resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

func (c *AdapterClient) DeleteSession(ctx context.Context, sessionToken string) error {
	return c.invoke(ctx, rpc.MethodDeleteSession, &rpc.DeleteSessionRequest{SessionToken: sessionToken}, &rpc.Empty{})
}

func (c *AdapterClient) CreateVerificationToken(ctx context.Context, token services.VerificationToken) (*services.VerificationToken, error) {
	resp := &rpc.VerificationTokenResponse{}
	if err := c.invoke(ctx, rpc.MethodCreateVerificationToken, &rpc.CreateVerificationTokenRequest{Token: token}, resp); err != nil {
		return nil, err
	}
	return resp.Token, nil
}

func (c *AdapterClient) UseVerificationToken(ctx context.Context, identifier, token string) (*services.VerificationToken, error) {
	resp := &rpc.VerificationTokenResponse{}
	req := &rpc.UseVerificationTokenRequest{Identifier: identifier, Token: token}
	if err := c.invoke(ctx, rpc.MethodUseVerificationToken, req, resp); err != nil {
		return nil, err
	}
	return resp.Token, nil
}
