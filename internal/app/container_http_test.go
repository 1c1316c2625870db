package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-driver/internal/config"
	"service-driver/internal/http/middleware/ratelimit"
	"service-driver/internal/logx"
	"service-driver/internal/metrics"
	"service-driver/internal/transport/kafka"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func setupHTTPContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))
	require.NoError(t, c.Provide(func() *kafka.Publisher { return nil }))
	require.NoError(t, c.Provide(func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total_unit",
			Help: "stub",
		})
	}, dig.Name("rate_limit_exceeded_total")))

	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func TestRegisterHTTP_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof = config.Pprof{Enabled: false, Addr: "0.0.0.0:6060"}

	c := setupHTTPContainerWithCfg(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof = config.Pprof{Enabled: true, Addr: "127.0.0.1:6060", User: "u", Pass: "p"}

	c := setupHTTPContainerWithCfg(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_ServerServesPing(t *testing.T) {
	t.Parallel()

	c := setupHTTPContainerWithCfg(t, testConfig())
	err := c.Invoke(func(srv *http.Server) {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

		rr = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/driver/x", nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
	require.NoError(t, err)
}

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{Enabled: false, RPS: 1, Burst: 1}
	require.IsType(t, ratelimit.Unlimited{}, newRateLimiter(cfg, newRateLimitClock()))

	cfg.RateLimit.Enabled = true
	l := newRateLimiter(cfg, newRateLimitClock())
	require.IsType(t, &ratelimit.IPLimiter{}, l)
	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))
}

func swapRegistry(t *testing.T, reg prometheus.Registerer) {
	t.Helper()
	oldReg := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = reg
	t.Cleanup(func() { prometheus.DefaultRegisterer = oldReg })
}

func TestProvideMetrics_Success_RegistersAndReturnsCounters(t *testing.T) {
	swapRegistry(t, prometheus.NewRegistry())

	out, err := provideMetrics()
	require.NoError(t, err)
	require.NotNil(t, out.RateLimitExceededTotal)
	require.NotNil(t, out.EventPublishFailuresTotal)
}

func TestProvideMetrics_AlreadyRegistered_ReturnsExistingCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	swapRegistry(t, reg)

	existingRL := metrics.NewRateLimitExceededTotal()
	existingPF := metrics.NewEventPublishFailuresTotal()
	require.NoError(t, reg.Register(existingRL))
	require.NoError(t, reg.Register(existingPF))

	out, err := provideMetrics()
	require.NoError(t, err)

	require.Same(t, existingRL, out.RateLimitExceededTotal)
	require.Same(t, existingPF, out.EventPublishFailuresTotal)
}

type errRegisterer struct{ err error }

func (e errRegisterer) Register(prometheus.Collector) error  { return e.err }
func (e errRegisterer) MustRegister(...prometheus.Collector) {}
func (e errRegisterer) Unregister(prometheus.Collector) bool { return false }

func TestProvideMetrics_RegisterError_NotAlreadyRegistered(t *testing.T) {
	swapRegistry(t, errRegisterer{err: errors.New("boom")})

	_, err := provideMetrics()
	require.Error(t, err)
	require.Contains(t, err.Error(), "register rate_limit_exceeded_total")
}

func TestNewEventPublisher_DisabledWithoutBrokers(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Kafka = config.Kafka{Topic: "driver-events"}

	pub, err := newEventPublisher(publisherIn{Config: cfg, Logger: logx.Nop()})
	require.NoError(t, err)
	require.Nil(t, pub)
}
