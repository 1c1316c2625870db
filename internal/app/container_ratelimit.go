package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-driver/internal/config"
	"service-driver/internal/http/middleware/ratelimit"
	"service-driver/internal/logx"
)

const (
	rateLimitTTL        = 5 * time.Minute
	rateLimitMaxClients = 10000
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.Unlimited{}
	}
	return ratelimit.NewIPLimiter(clock, ratelimit.Config{
		RPS:        rl.RPS,
		Burst:      rl.Burst,
		TTL:        rateLimitTTL,
		MaxEntries: rateLimitMaxClients,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.SystemClock
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
