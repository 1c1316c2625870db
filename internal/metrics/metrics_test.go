package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters_StartAtZeroAndIncrement(t *testing.T) {
	t.Parallel()

	rl := NewRateLimitExceededTotal()
	pf := NewEventPublishFailuresTotal()

	require.Equal(t, 0.0, testutil.ToFloat64(rl))
	require.Equal(t, 0.0, testutil.ToFloat64(pf))

	rl.Inc()
	pf.Add(2)

	require.Equal(t, 1.0, testutil.ToFloat64(rl))
	require.Equal(t, 2.0, testutil.ToFloat64(pf))
}

func TestRegister_ReturnsExistingOnDuplicate(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first, err := Register(reg, RateLimitExceededName, NewRateLimitExceededTotal())
	require.NoError(t, err)
	first.Inc()

	second, err := Register(reg, RateLimitExceededName, NewRateLimitExceededTotal())
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1.0, testutil.ToFloat64(second))
}

func TestRegister_ConflictingDescriptor(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := Register(reg, EventPublishFailuresName, NewEventPublishFailuresTotal())
	require.NoError(t, err)

	clash := prometheus.NewCounter(prometheus.CounterOpts{
		Name: EventPublishFailuresName,
		Help: "different help text",
	})
	_, err = Register(reg, EventPublishFailuresName, clash)
	require.Error(t, err)
	require.Contains(t, err.Error(), "register driver_event_publish_failures_total")
}
