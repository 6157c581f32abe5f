package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRelay = errors.New("relay down")

func fail(context.Context) error { return errRelay }
func ok(context.Context) error   { return nil }

func newTestBreaker(clock *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(BreakerConfig{Name: "smtp", MaxFailures: 3, HalfOpenPass: 2, CoolDown: time.Minute})
	cb.now = func() time.Time { return *clock }
	return cb
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&clock)
	ctx := context.Background()

	assert.ErrorIs(t, cb.Do(ctx, fail), errRelay)
	assert.ErrorIs(t, cb.Do(ctx, fail), errRelay)
	require.NoError(t, cb.Do(ctx, ok), "a success resets the count")
	for i := 0; i < 3; i++ {
		_ = cb.Do(ctx, fail)
	}
	assert.Equal(t, BreakerOpen, cb.State())

	called := false
	err := cb.Do(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)

	snap := cb.Snapshot()
	assert.Equal(t, "smtp", snap.Name)
	assert.Equal(t, 3, snap.Failures)
	require.NotNil(t, snap.OpenedAt)
}

func TestCircuitBreaker_HalfOpenProbes(t *testing.T) {
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&clock)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Do(ctx, fail)
	}

	clock = clock.Add(time.Minute)
	assert.Equal(t, BreakerHalfOpen, cb.State())
	assert.ErrorIs(t, cb.Do(ctx, fail), errRelay)
	assert.Equal(t, BreakerOpen, cb.State(), "a failed probe reopens")

	clock = clock.Add(2 * time.Minute)
	require.NoError(t, cb.Do(ctx, ok))
	assert.Equal(t, BreakerHalfOpen, cb.State())
	require.NoError(t, cb.Do(ctx, ok))
	assert.Equal(t, BreakerClosed, cb.State())
	assert.Nil(t, cb.Snapshot().OpenedAt)
}

func TestCircuitBreaker_CancelledCallsDoNotCount(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cb.Do(ctx, func(ctx context.Context) error { return ctx.Err() }), context.Canceled)
	}
	assert.Equal(t, BreakerClosed, cb.State())
	assert.Zero(t, cb.Snapshot().Failures)
}

type countingMailer struct {
	sent []Mail
	err  error
}

func (m *countingMailer) Send(_ context.Context, msg Mail) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func TestBreakerMailer_StopsCallingDeadRelay(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)
	next := &countingMailer{err: errRelay}
	m := NewBreakerMailer(next, cb)

	for i := 0; i < 5; i++ {
		_ = m.Send(context.Background(), Mail{To: "a@example.com"})
	}
	assert.Len(t, next.sent, 3)
	assert.Same(t, cb, m.Breaker())
}
