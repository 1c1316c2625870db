package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"service-driver/internal/logx"
)

// unmatchedPath labels requests that hit no route, keeping label cardinality bounded.
const unmatchedPath = "unmatched"

var requestLabels = []string{"method", "path", "status"}

type requestMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newRequestMetrics() *requestMetrics {
	return &requestMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, requestLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, requestLabels),
	}
}

func (m *requestMetrics) observe(method, path string, code int, d time.Duration) {
	status := strconv.Itoa(code)
	m.total.WithLabelValues(method, path, status).Inc()
	m.duration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

var httpMetrics = newRequestMetrics()

func init() {
	prometheus.MustRegister(httpMetrics.total, httpMetrics.duration)
}

// Observability records request metrics and writes one access log line per request.
// 5xx responses are logged at error level.
func Observability(logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			// шаблон маршрута, а не сырой путь: /api/driver/{id}
			path := routePattern(r)
			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			httpMetrics.observe(r.Method, path, code, elapsed)

			log := logger.Info
			if code >= http.StatusInternalServerError {
				log = logger.Error
			}
			log("http request",
				logx.String("req_id", chimw.GetReqID(r.Context())),
				logx.String("method", r.Method),
				logx.String("path", path),
				logx.Int("status", code),
				logx.Int("bytes", ww.BytesWritten()),
				logx.Duration("duration", elapsed),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedPath
}
