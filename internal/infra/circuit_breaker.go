package infra

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards calls to flaky downstreams (SMTP relay). States:
//   - closed:    calls pass through, consecutive failures are counted
//   - open:      calls fail fast until the cool-down elapses
//   - half-open: a limited number of probe calls decide whether to close again

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

// ErrBreakerOpen is returned by Do while the breaker refuses calls.
var ErrBreakerOpen = errors.New("circuit breaker is open")

type BreakerConfig struct {
	Name         string
	MaxFailures  int           // consecutive failures before opening
	HalfOpenPass int           // consecutive probe successes needed to close
	CoolDown     time.Duration // time spent open before probing
}

func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{Name: name, MaxFailures: 5, HalfOpenPass: 2, CoolDown: time.Minute}
}

// BreakerSnapshot is a point-in-time view for health output.
type BreakerSnapshot struct {
	Name     string       `json:"name"`
	State    BreakerState `json:"state"`
	Failures int          `json:"failures"`
	OpenedAt *time.Time   `json:"opened_at,omitempty"`
}

type CircuitBreaker struct {
	cfg BreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
}

func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.HalfOpenPass <= 0 {
		cfg.HalfOpenPass = 1
	}
	if cfg.CoolDown <= 0 {
		cfg.CoolDown = time.Minute
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now, state: BreakerClosed}
}

// State returns the current state, moving open → half-open once the cool-down is over.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentLocked()
}

func (cb *CircuitBreaker) currentLocked() BreakerState {
	if cb.state == BreakerOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.CoolDown {
		cb.state = BreakerHalfOpen
		cb.successes = 0
	}
	return cb.state
}

// Do runs fn unless the breaker is open. Context cancellation is reported to
// the caller but does not count as a downstream failure.
func (cb *CircuitBreaker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if cb.State() == BreakerOpen {
		return ErrBreakerOpen
	}
	err := fn(ctx)
	if err != nil && ctx.Err() != nil {
		return err
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		if cb.state == BreakerHalfOpen || cb.failures >= cb.cfg.MaxFailures {
			cb.state = BreakerOpen
			cb.openedAt = cb.now()
			cb.successes = 0
		}
		return err
	}

	cb.failures = 0
	if cb.state == BreakerHalfOpen {
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenPass {
			cb.state = BreakerClosed
			cb.successes = 0
		}
	}
	return nil
}

func (cb *CircuitBreaker) Snapshot() BreakerSnapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	s := BreakerSnapshot{Name: cb.cfg.Name, State: cb.currentLocked(), Failures: cb.failures}
	if s.State != BreakerClosed && !cb.openedAt.IsZero() {
		t := cb.openedAt
		s.OpenedAt = &t
	}
	return s
}
