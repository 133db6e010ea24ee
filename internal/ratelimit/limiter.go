// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultMaxClients bounds the number of tracked clients so a flood of
	// distinct addresses cannot grow the map without limit.
	defaultMaxClients = 10000

	defaultCleanupInterval = time.Minute
)

// Limiter provides per-client rate limiting.
//
// A non-positive rate disables limiting: Allow always succeeds and no
// clients are tracked.
type Limiter struct {
	limiters   map[string]*rate.Limiter
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	maxClients int
	cleanup    *time.Ticker
	stopOnce   sync.Once
	stopChan   chan struct{}
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithMaxClients sets how many distinct clients are tracked at once.
// New clients beyond the limit are rejected until cleanup frees room.
func WithMaxClients(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.maxClients = n
		}
	}
}

// NewLimiter creates a new rate limiter allowing requestsPerSecond with the
// given burst per client.
func NewLimiter(requestsPerSecond int, burst int, opts ...Option) *Limiter {
	return newLimiter(requestsPerSecond, burst, defaultCleanupInterval, opts...)
}

func newLimiter(requestsPerSecond, burst int, interval time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		limiters:   make(map[string]*rate.Limiter),
		rate:       rate.Limit(requestsPerSecond),
		burst:      max(burst, 1),
		maxClients: defaultMaxClients,
		stopChan:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.cleanup = time.NewTicker(interval)
	go l.cleanupRoutine()

	return l
}

// Enabled reports whether requests are limited at all.
func (l *Limiter) Enabled() bool {
	return l.rate > 0
}

// Allow checks if a request from the given client should be allowed.
func (l *Limiter) Allow(client string) bool {
	if !l.Enabled() {
		return true
	}

	l.mu.Lock()
	limiter, exists := l.limiters[client]
	if !exists {
		if len(l.limiters) >= l.maxClients {
			l.mu.Unlock()
			return false
		}
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[client] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

func (l *Limiter) cleanupRoutine() {
	for {
		select {
		case <-l.cleanup.C:
			l.cleanupIdle()
		case <-l.stopChan:
			return
		}
	}
}

// cleanupIdle drops limiters whose bucket has refilled, meaning the client
// has been quiet for at least burst/rate seconds.
func (l *Limiter) cleanupIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for client, limiter := range l.limiters {
		if limiter.Tokens() >= float64(l.burst) {
			delete(l.limiters, client)
		}
	}
}

// Stop stops the cleanup goroutine. Safe to call multiple times.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		l.cleanup.Stop()
		close(l.stopChan)
	})
}

// Tracked returns the number of clients currently tracked.
func (l *Limiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
