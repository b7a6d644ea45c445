// Package ratelimit implements an advisory, in-process request counter.
//
// The Tracker never blocks or sleeps. It only answers whether another request
// fits the configured requests-per-minute threshold; callers decide what to do
// with a denial (see NewMiddleware). Token budgets are stored but not checked.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultRequestsPerMin = 60
	DefaultTokensPerMin   = 90000

	// Window is the span within which requests count against the threshold.
	Window = time.Minute
)

// Limits are the advisory thresholds of a Tracker.
type Limits struct {
	RequestsPerMin int `yaml:"requests_per_min" json:"requests_per_min"`
	TokensPerMin   int `yaml:"tokens_per_min" json:"tokens_per_min"`
}

// DefaultLimits returns the limits a new Tracker starts with.
func DefaultLimits() Limits {
	return Limits{
		RequestsPerMin: DefaultRequestsPerMin,
		TokensPerMin:   DefaultTokensPerMin,
	}
}

// Checker is anything that can answer whether another request is allowed.
type Checker interface {
	CheckRateLimit() bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithLimits sets the initial limits.
func WithLimits(limits Limits) Option {
	return func(t *Tracker) {
		t.limits = limits
	}
}

// Tracker counts requests against Limits.
//
// The count is cumulative: it starts at one on the first request and is
// incremented on every later call, including denied ones. Once the threshold
// is reached, calls are denied for as long as they keep arriving less than a
// Window apart. A call after a quiet Window is allowed, and the call after it
// is measured against the still-growing count again.
//
// A Tracker is not safe for concurrent use; wrap it with NewLocked.
type Tracker struct {
	limits      Limits
	now         func() time.Time
	lastRequest time.Time
	count       int
}

// NewTracker returns a Tracker with DefaultLimits and no recorded requests.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		limits: DefaultLimits(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CheckRateLimit records a request and reports whether it is within limits.
func (t *Tracker) CheckRateLimit() bool {
	now := t.now()

	if t.lastRequest.IsZero() {
		t.lastRequest = now
		t.count = 1
		return true
	}

	allowed := true
	if now.Sub(t.lastRequest) < Window && t.count >= t.limits.RequestsPerMin {
		allowed = false
	}

	t.lastRequest = now
	t.count++
	return allowed
}

// GetRateLimits returns the current limits.
func (t *Tracker) GetRateLimits() Limits {
	return t.limits
}

// SetRateLimits replaces the limits. Recorded state is kept.
func (t *Tracker) SetRateLimits(requestsPerMin, tokensPerMin int) {
	t.limits = Limits{
		RequestsPerMin: requestsPerMin,
		TokensPerMin:   tokensPerMin,
	}
}

// RequestCount returns the number of recorded requests.
func (t *Tracker) RequestCount() int {
	return t.count
}

// LastRequest returns the time of the last recorded request, or the zero
// time if none has been recorded.
func (t *Tracker) LastRequest() time.Time {
	return t.lastRequest
}

// Locked serializes access to a Tracker.
type Locked struct {
	mu      sync.Mutex
	tracker *Tracker
}

// NewLocked wraps tracker for use by concurrent callers.
func NewLocked(tracker *Tracker) *Locked {
	return &Locked{tracker: tracker}
}

// CheckRateLimit calls Tracker.CheckRateLimit under the lock.
func (l *Locked) CheckRateLimit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tracker.CheckRateLimit()
}

// GetRateLimits returns the configured limits.
func (l *Locked) GetRateLimits() Limits {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tracker.GetRateLimits()
}

// SetRateLimits replaces the limits. Recorded state is kept.
func (l *Locked) SetRateLimits(requestsPerMin, tokensPerMin int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tracker.SetRateLimits(requestsPerMin, tokensPerMin)
}

// RequestCount returns the number of recorded requests.
func (l *Locked) RequestCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tracker.RequestCount()
}
