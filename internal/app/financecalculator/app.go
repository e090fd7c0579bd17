// Package financecalculator собирает HTTP- и gRPC-серверы калькуляторов из конфига.
package financecalculator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/finance-calculator/internal/cache"
	"github.com/magabrotheeeer/finance-calculator/internal/config"
	"github.com/magabrotheeeer/finance-calculator/internal/grpc/server"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/metrics"
	"github.com/magabrotheeeer/finance-calculator/internal/migrations"
	"github.com/magabrotheeeer/finance-calculator/internal/paymentprovider"
	"github.com/magabrotheeeer/finance-calculator/internal/services/admin"
	"github.com/magabrotheeeer/finance-calculator/internal/services/ads"
	"github.com/magabrotheeeer/finance-calculator/internal/services/affiliate"
	"github.com/magabrotheeeer/finance-calculator/internal/services/payment"
	"github.com/magabrotheeeer/finance-calculator/internal/services/seo"
	"github.com/magabrotheeeer/finance-calculator/internal/services/subscription"
	"github.com/magabrotheeeer/finance-calculator/internal/storage"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthProbeInterval = 30 * time.Second
	amqpRetries         = 5
	amqpRetryDelay      = 2 * time.Second
)

// Store хранилище документов с проверкой доступности.
type Store interface {
	storage.Store
	Ping(ctx context.Context) error
}

// App HTTP-сервер и необязательный gRPC health-сервер.
type App struct {
	server  *http.Server
	grpc    *server.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New открывает хранилище и брокер, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.financecalculator.New"

	app := &App{logger: logger}

	store, err := app.openStore(ctx, cfg)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	publisher, err := app.openPublisher(cfg)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	subscriptions := subscription.NewService(store, logger, time.Now)
	affiliates := affiliate.NewService(store, publisher, m, logger)
	provider := paymentprovider.NewClient(cfg.KeyID, cfg.KeySecret, cfg.APIURL)
	payments := payment.New(provider, subscriptions, store, publisher, m, cfg.WebhookSecret, logger)
	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Store:         store,
		Metrics:       m,
		Limiter:       cfg.RateLimit,
		Tokens:        tokens,
		Catalogue:     seo.NewCatalogue(cfg.PublicURL),
		Affiliates:    affiliates,
		Subscriptions: subscriptions,
		Payments:      payments,
		Admin:         admin.NewService(cfg.PasswordHash, tokens, logger),
		Ads:           ads.NewService(cfg.AdClientID, subscriptions),
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.AddressGRPC != "" {
		lis, err := net.Listen("tcp", cfg.AddressGRPC)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: listen grpc: %w", op, err)
		}
		app.grpc = server.New(lis, server.NewHealth(store, healthProbeInterval, logger), logger)
	}

	return app, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := storage.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		if err := storage.CheckDatabaseReady(ctx, db); err != nil {
			return nil, err
		}
		if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		a.logger.Info("using postgres storage")
		return db, nil
	case config.BackendRedis:
		rdb, err := cache.New(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb)
		a.logger.Info("using redis storage", slog.String("address", cfg.AddressRedis))
		return rdb, nil
	default:
		a.logger.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemory(), nil
	}
}

type publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

func (a *App) openPublisher(cfg *config.Config) (publisher, error) {
	if cfg.RabbitMQURL == "" {
		a.logger.Info("rabbitmq url is empty, events are not published")
		return rabbitmq.Nop{}, nil
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, amqpRetries, amqpRetryDelay)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, conn)
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.GetEventQueues())
	if err != nil {
		return nil, err
	}
	p := rabbitmq.NewPublisher(ch, cfg.Exchange)
	// канал закрывается раньше соединения
	a.closers = append(a.closers, p)
	return p, nil
}

// close освобождает ресурсы в обратном порядке открытия.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает серверы.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if a.grpc != nil {
		g.Go(func() error {
			if err := a.grpc.Run(gctx); err != nil {
				return fmt.Errorf("grpc: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	})

	// хранилище закрывается только после остановки обоих серверов
	return g.Wait()
}
