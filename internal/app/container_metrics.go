package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-driver/internal/metrics"
)

type metricsOut struct {
	dig.Out
	RateLimitExceededTotal    prometheus.Counter `name:"rate_limit_exceeded_total"`
	EventPublishFailuresTotal prometheus.Counter `name:"driver_event_publish_failures_total"`
}

func provideMetrics() (metricsOut, error) {
	rl, err := metrics.Register(prometheus.DefaultRegisterer, metrics.RateLimitExceededName, metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	pf, err := metrics.Register(prometheus.DefaultRegisterer, metrics.EventPublishFailuresName, metrics.NewEventPublishFailuresTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal:    rl,
		EventPublishFailuresTotal: pf,
	}, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}
