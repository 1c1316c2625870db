// Package metrics holds the service's own Prometheus counters.
// HTTP request metrics live in the observability middleware.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter names, also used as dig value names in the app container.
const (
	// RateLimitExceededName names the counter of requests rejected with 429.
	RateLimitExceededName = "rate_limit_exceeded_total"

	// EventPublishFailuresName names the counter of driver events the broker did not accept.
	EventPublishFailuresName = "driver_event_publish_failures_total"
)

// NewRateLimitExceededTotal counts requests rejected with 429.
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: RateLimitExceededName,
		Help: "Total number of HTTP requests rejected by the per-client rate limiter",
	})
}

// NewEventPublishFailuresTotal counts driver change events the broker did not accept.
func NewEventPublishFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: EventPublishFailuresName,
		Help: "Total number of driver change events that failed to publish",
	})
}

// Register adds c to reg. If an identical counter is already there, that one is returned
// so a second container build in the same process keeps counting into it.
func Register(reg prometheus.Registerer, name string, c prometheus.Counter) (prometheus.Counter, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("register %s: %w", name, err)
}
