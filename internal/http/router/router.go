package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"service-driver/internal/http/handlers"
	mw "service-driver/internal/http/middleware"
	"service-driver/internal/http/middleware/ratelimit"
	"service-driver/internal/logx"
)

const requestTimeout = 5 * time.Second

// Options holds the optional parts of the middleware chain.
type Options struct {
	Logger         logx.Logger
	RateLimit      *ratelimit.Middleware
	AllowedOrigins []string
	Metrics        http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(base *handlers.Handlers, drivers *handlers.DriverHandler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logx.Nop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.NotFound(http.HandlerFunc(base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(base.MethodNotAllowed))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(logger))
	r.Use(middleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{handlers.MissingSetHeader, "Location"},
		}).Handler)
	}

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit.Handler())
		}
		r.Use(middleware.Timeout(requestTimeout))

		r.Route("/api/driver", func(r chi.Router) {
			r.Get("/", drivers.GetByIDs)
			r.Post("/", drivers.Create)
			r.Get("/all", drivers.GetAll)
			r.Get("/{id}", drivers.GetByID)
			r.Put("/{id}", drivers.Update)
			r.Delete("/{id}", drivers.Delete)
		})
	})

	return r
}
