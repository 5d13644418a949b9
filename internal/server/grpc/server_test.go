package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/rpc"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/mocks"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

const testSecret = "secret"

func newMemoryAdapter() *services.AdapterService {
	return services.NewAdapterService(nil, mocks.NewRepositoryManager(), nil, services.Options{}, nil)
}

// startBufconn serves adapter over an in-memory listener and returns a
// connection to it.
func startBufconn(t *testing.T, adapter services.Adapter) *grpc.ClientConn {
	t.Helper()

	srv, err := NewGRPCServer("bufnet", nopLogger{}, adapter, testSecret)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return conn
}

func authed(t *testing.T) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken("test", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:0", nopLogger{}, newMemoryAdapter(), "secret")
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:99999", nopLogger{}, newMemoryAdapter(), "secret")
	if err != nil {
		t.Fatalf("NewGRPCServer error (constructor should not fail here): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestHealth_NoTokenNeeded(t *testing.T) {
	conn := startBufconn(t, newMemoryAdapter())

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: rpc.ServiceName},
		grpc.CallContentSubtype("proto"))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestAdapterMethods_RequireToken(t *testing.T) {
	conn := startBufconn(t, newMemoryAdapter())

	out := &rpc.UserResponse{}
	err := conn.Invoke(context.Background(), rpc.FullMethod(rpc.MethodGetUserByEmail), &rpc.GetUserByEmailRequest{Email: "a@x.io"}, out)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAdapterMethods_OverTheWire(t *testing.T) {
	conn := startBufconn(t, newMemoryAdapter())
	ctx := authed(t)

	email := "a@example.com"
	created := &rpc.UserResponse{}
	require.NoError(t, conn.Invoke(ctx, rpc.FullMethod(rpc.MethodCreateUser), &rpc.CreateUserRequest{User: services.NewUser{Email: &email}}, created))
	require.NotNil(t, created.User)
	assert.Equal(t, email, *created.User.Email)

	got := &rpc.UserResponse{}
	require.NoError(t, conn.Invoke(ctx, rpc.FullMethod(rpc.MethodGetUser), &rpc.GetUserRequest{ID: created.User.ID}, got))
	require.NotNil(t, got.User)
	assert.Equal(t, created.User.ID, got.User.ID)

	// absent results come back as a null payload, not an error
	missing := &rpc.UserResponse{}
	require.NoError(t, conn.Invoke(ctx, rpc.FullMethod(rpc.MethodGetUserByEmail), &rpc.GetUserByEmailRequest{Email: "nobody@x.io"}, missing))
	assert.Nil(t, missing.User)

	err := conn.Invoke(ctx, rpc.FullMethod(rpc.MethodGetUser), &rpc.GetUserRequest{ID: "not-a-uuid"}, &rpc.UserResponse{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
