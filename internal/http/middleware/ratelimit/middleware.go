package ratelimit

import (
	"io"
	"net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"service-driver/internal/logx"
)

const tooManyRequestsBody = `{"message":"too many requests"}`

// Middleware rejects requests of clients that exceeded their rate
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter // отказы
	limiter Limiter
}

// New creates a Middleware. A nil limiter lets every request through.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter) *Middleware {
	if logger == nil {
		logger = logx.Nop()
	}
	if limiter == nil {
		limiter = Unlimited{}
	}
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if m.limiter.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			if m.counter != nil {
				m.counter.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("ip", ip),
				logx.String("req_id", chimw.GetReqID(r.Context())),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, tooManyRequestsBody); err != nil {
				// клиент мог оборвать соединение
				m.logger.Debug("rate limit response write failed",
					logx.String("ip", ip),
					logx.Err(err),
				)
			}
		})
	}
}

// clientIP relies on chi RealIP having rewritten RemoteAddr from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
