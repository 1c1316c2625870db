package app

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-driver/internal/logx"
	"service-driver/internal/repository"
)

// dbAttemptTimeout bounds a single connect+ping attempt.
const dbAttemptTimeout = 3 * time.Second

var newPool = repository.NewPool

// connectDbWithRetry tries up to retries times, sleeping delay between attempts.
// Credentials never reach the log: only the host part of dsn is logged.
func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	logger = logger.With(logx.String("db_host", dsnHost(dsn)))

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		pool, err := tryConnect(ctx, dsn)
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", attempt))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Int("attempt", attempt),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if attempt == retries {
			break
		}
		if err := sleepCtx(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

func tryConnect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, dbAttemptTimeout)
	defer cancel()
	return newPool(attemptCtx, dsn)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func dsnHost(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
