package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/dig"

	"service-driver/internal/config"
	"service-driver/internal/http/handlers"
	"service-driver/internal/http/middleware/ratelimit"
	"service-driver/internal/http/pprofserver"
	"service-driver/internal/http/router"
	"service-driver/internal/logx"
	"service-driver/internal/repository"
	"service-driver/internal/service/driver"
	"service-driver/internal/tracing"
	"service-driver/internal/transport/kafka"
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

var migrate = repository.Migrate

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config.Load with a fixed configuration
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerEvents(container); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		func(ctx context.Context) (tracing.ShutdownFunc, error) {
			return tracing.Init(ctx)
		},
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied")
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type publisherIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Failures prometheus.Counter `name:"driver_event_publish_failures_total"`
}

func newEventPublisher(in publisherIn) (*kafka.Publisher, error) {
	return kafka.NewPublisher(in.Config.Kafka.Brokers, in.Config.Kafka.Topic, in.Failures, in.Logger)
}

func registerEvents(container *dig.Container) error {
	return provideAll(container, newEventPublisher)
}

func newDriverService(
	repo *repository.DriverRepo,
	pub *kafka.Publisher,
	cfg *config.Config,
	logger logx.Logger,
) *driver.Service {
	if pub == nil {
		return driver.NewService(repo, nil, cfg.OperationTimeout, logger)
	}
	return driver.NewService(repo, pub, cfg.OperationTimeout, logger)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDriverRepo,
		newDriverService,
	)
}

type routerIn struct {
	dig.In
	Config    *config.Config
	Logger    logx.Logger
	Base      *handlers.Handlers
	Drivers   *handlers.DriverHandler
	RateLimit *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(in.Base, in.Drivers, router.Options{
		Logger:         in.Logger,
		RateLimit:      in.RateLimit,
		AllowedOrigins: in.Config.CORS.AllowedOrigins,
	})
}

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config, logger logx.Logger) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.NewServer(cfg.Pprof.Addr, pprofserver.Config{
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	}, logger)}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           otelhttp.NewHandler(mux, "service-driver-http"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		newPprofServer,
	)
}
