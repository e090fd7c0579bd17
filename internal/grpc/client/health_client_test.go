package client

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T) (*health.Server, *bufconn.Listener) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	hs := health.NewServer()
	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)
	return hs, lis
}

func TestHealthClient_Check(t *testing.T) {
	hs, lis := startServer(t)
	hs.SetServingStatus("finance-calculator", healthpb.HealthCheckResponse_NOT_SERVING)

	c, err := NewHealthClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	st, err := c.Check(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "SERVING", st)

	st, err = c.Check(context.Background(), "finance-calculator")
	require.NoError(t, err)
	assert.Equal(t, "NOT_SERVING", st)

	_, err = c.Check(context.Background(), "unknown")
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}
