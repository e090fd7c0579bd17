package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) fail(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func dial(t *testing.T, lis *bufconn.Listener) healthpb.HealthClient {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestHealth_Probe(t *testing.T) {
	p := &fakePinger{}
	h := NewHealth(p, 0, sl.NewDiscardLogger())

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Probe(context.Background()))

	p.fail(errors.New("connection refused"))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, h.Probe(context.Background()))
}

func TestHealth_NilPinger(t *testing.T) {
	h := NewHealth(nil, 0, sl.NewDiscardLogger())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Probe(context.Background()))
}

func TestServer_Check(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	p := &fakePinger{}
	h := NewHealth(p, 10*time.Millisecond, sl.NewDiscardLogger())
	srv := New(lis, h, sl.NewDiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	client := dial(t, lis)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	p.fail(errors.New("connection refused"))
	assert.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

// slowPinger считает проверки, которые ещё не закончились.
type slowPinger struct {
	delay    time.Duration
	inflight atomic.Int32
	calls    atomic.Int32
}

func (p *slowPinger) Ping(ctx context.Context) error {
	p.inflight.Add(1)
	defer p.inflight.Add(-1)
	p.calls.Add(1)
	time.Sleep(p.delay)
	return nil
}

func TestServer_RunWaitsForPoll(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	p := &slowPinger{delay: 50 * time.Millisecond}
	h := NewHealth(p, time.Millisecond, sl.NewDiscardLogger())
	srv := New(lis, h, sl.NewDiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool { return p.inflight.Load() > 0 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Zero(t, p.inflight.Load(), "storage is still in use after Run returned")

	calls := p.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, p.calls.Load())
}
