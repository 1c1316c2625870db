package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config stores IPLimiter settings.
type Config struct {
	RPS        float64       // tokens per second
	Burst      int           // max tokens
	TTL        time.Duration // idle keys are forgotten after TTL (0 disables)
	MaxEntries int           // oldest key is evicted when full (0 means unbounded)
}

// IPLimiter keeps one rate.Limiter per key.
type IPLimiter struct {
	cfg         Config
	clock       Clock
	mu          sync.Mutex
	entries     map[string]*entry
	lastCleanup time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiter creates a limiter with explicit config and injected clock.
func NewIPLimiter(clock Clock, cfg Config) *IPLimiter {
	if clock == nil {
		clock = SystemClock
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxEntries < 0 {
		cfg.MaxEntries = 0
	}
	return &IPLimiter{
		cfg:     cfg,
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Allow reports whether key may proceed now.
func (l *IPLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanupLocked(now)

	e, ok := l.entries[key]
	if !ok {
		if l.cfg.MaxEntries > 0 && len(l.entries) >= l.cfg.MaxEntries {
			l.evictOldestLocked()
		}
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *IPLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *IPLimiter) cleanupLocked(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	interval := time.Minute
	if half := l.cfg.TTL / 2; half > interval {
		interval = half
	}
	if !l.lastCleanup.IsZero() && now.Sub(l.lastCleanup) < interval {
		return
	}
	l.lastCleanup = now

	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.cfg.TTL {
			delete(l.entries, k)
		}
	}
}

func (l *IPLimiter) evictOldestLocked() {
	var (
		oldestKey  string
		oldestSeen time.Time
		first      = true
	)
	for k, e := range l.entries {
		if first || e.lastSeen.Before(oldestSeen) {
			oldestKey = k
			oldestSeen = e.lastSeen
			first = false
		}
	}
	if !first {
		delete(l.entries, oldestKey)
	}
}
