package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-driver/internal/logx"
	"service-driver/internal/tracing"
	"service-driver/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP server
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container and blocks
// until shutdown. Unexpected errors panic.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logger := loggerFrom(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	var logger logx.Logger
	if err := container.Invoke(func(l logx.Logger) { logger = l }); err != nil || logger == nil {
		return logx.Nop()
	}
	return logger
}

type runIn struct {
	dig.In
	Ctx       context.Context
	Logger    logx.Logger
	Server    *http.Server
	Pprof     *http.Server `name:"pprof_server" optional:"true"`
	Pool      *pgxpool.Pool
	Publisher *kafka.Publisher     `optional:"true"`
	Tracing   tracing.ShutdownFunc `optional:"true"`
}

func run(container *dig.Container) error {
	var runErr error
	err := container.Invoke(func(in runIn) {
		errCh := make(chan error, 2)
		startServer(in.Server, in.Logger, "http", errCh)
		if in.Pprof != nil {
			startServer(in.Pprof, in.Logger, "pprof", errCh)
		}

		select {
		case <-in.Ctx.Done():
			in.Logger.Info("shutting down service-driver")
			runErr = in.Ctx.Err()
		case err := <-errCh:
			in.Logger.Error("server failed", logx.Err(err))
			runErr = err
		}

		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
		}
		closeResources(in)
	})
	if err != nil {
		return err
	}
	return runErr
}

func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("server listening",
			logx.String("server", name),
			logx.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runIn) {
	if err := in.Publisher.Close(); err != nil {
		in.Logger.Warn("kafka publisher close error", logx.Err(err))
	}
	if in.Tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := in.Tracing(ctx); err != nil {
			in.Logger.Warn("tracer shutdown error", logx.Err(err))
		}
		cancel()
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
	if err := in.Logger.Sync(); err != nil {
		in.Logger.Warn("logger sync error", logx.Err(err))
	}
}
