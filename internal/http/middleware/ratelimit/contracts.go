package ratelimit

import "time"

// Limiter decides per client key (remote IP) whether a request may pass.
type Limiter interface {
	Allow(key string) bool
}

// Clock is the time source used for token refill and idle key expiry.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Unlimited lets every request through. Used when RATE_LIMIT_ENABLED is off.
type Unlimited struct{}

// Allow always returns true.
func (Unlimited) Allow(string) bool { return true }
