// Package server реализует gRPC-сервер сервиса.
//
// Сервер отдаёт стандартный grpc.health.v1.Health. Статус обновляется фоновой
// проверкой хранилища: недоступное хранилище переводит сервис в NOT_SERVING.
package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

// ServiceName имя сервиса в ответах Health.
const ServiceName = "finance-calculator"

const stopTimeout = 10 * time.Second

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health держит статус сервиса для grpc.health.v1.
type Health struct {
	*health.Server
	pinger   Pinger
	interval time.Duration
	log      *slog.Logger
}

// NewHealth создаёт Health. pinger может быть nil, тогда сервис всегда SERVING.
func NewHealth(pinger Pinger, interval time.Duration, log *slog.Logger) *Health {
	h := &Health{
		Server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		log:      log,
	}
	h.set(healthpb.HealthCheckResponse_SERVING)
	return h
}

func (h *Health) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.SetServingStatus("", status)
	h.SetServingStatus(ServiceName, status)
}

// Probe один раз проверяет хранилище и обновляет статус.
func (h *Health) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			h.log.Warn("storage ping failed", sl.Err(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.set(status)
	return status
}

// Poll проверяет хранилище каждые interval до отмены ctx.
func (h *Health) Poll(ctx context.Context) {
	if h.interval <= 0 {
		return
	}
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// Server gRPC-сервер с зарегистрированным Health.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	health     *Health
	log        *slog.Logger
}

// New регистрирует health на новом gRPC-сервере, слушающем lis.
func New(lis net.Listener, h *Health, log *slog.Logger) *Server {
	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, h)
	return &Server{grpcServer: s, listener: lis, health: h, log: log}
}

// Run обслуживает запросы до отмены ctx и затем останавливается штатно.
// Возвращается только после остановки фоновой проверки хранилища, поэтому
// хранилище можно закрывать сразу после Run.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	pollCtx, stopPoll := context.WithCancel(ctx)
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		s.health.Poll(pollCtx)
	}()
	defer func() {
		stopPoll()
		<-polled
	}()

	go func() {
		s.log.Info("gRPC health service listening on", slog.String("address", s.listener.Addr().String()))
		errCh <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.stop()
		return nil
	case err := <-errCh:
		return err
	}
}

// stop ждёт завершения активных вызовов не дольше stopTimeout:
// открытые потоки Watch иначе держали бы GracefulStop бесконечно.
func (s *Server) stop() {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(stopTimeout):
		s.log.Warn("gRPC graceful stop timed out")
		s.grpcServer.Stop()
		<-stopped
	}
}
