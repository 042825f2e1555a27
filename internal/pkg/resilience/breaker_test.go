//go:build unit

package resilience_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/resilience"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newTestBreaker(threshold int, cooldown time.Duration) (*resilience.Breaker, *clock.MockClock) {
	c := clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := resilience.NewBreaker("test", resilience.Settings{
		Threshold: threshold,
		Timeout:   time.Second,
		Cooldown:  cooldown,
	}, resilience.WithClock(c))
	return b, c
}

func fail(context.Context) error    { return errBoom }
func succeed(context.Context) error { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, 30*time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.ErrorIs(t, b.Execute(ctx, fail), errBoom)
		assert.Equal(t, resilience.StateClosed, b.Snapshot().State)
	}

	require.ErrorIs(t, b.Execute(ctx, fail), errBoom)
	assert.Equal(t, resilience.StateOpen, b.Snapshot().State)

	called := false
	err := b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, resilience.ErrBreakerOpen)
	assert.False(t, called, "operation must not run while open")
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3, 30*time.Second)
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	_ = b.Execute(ctx, fail)
	require.NoError(t, b.Execute(ctx, succeed))
	assert.Equal(t, 0, b.Snapshot().Failures)

	_ = b.Execute(ctx, fail)
	_ = b.Execute(ctx, fail)
	assert.Equal(t, resilience.StateClosed, b.Snapshot().State)
}

func TestBreaker_HalfOpenTrial(t *testing.T) {
	t.Run("successful trial closes", func(t *testing.T) {
		b, c := newTestBreaker(1, 30*time.Second)
		ctx := context.Background()

		_ = b.Execute(ctx, fail)
		require.Equal(t, resilience.StateOpen, b.Snapshot().State)

		c.Advance(29 * time.Second)
		assert.ErrorIs(t, b.Execute(ctx, succeed), resilience.ErrBreakerOpen)

		c.Advance(time.Second)
		require.NoError(t, b.Execute(ctx, succeed))
		snap := b.Snapshot()
		assert.Equal(t, resilience.StateClosed, snap.State)
		assert.Equal(t, 0, snap.Failures)
	})

	t.Run("failed trial reopens with fresh cooldown", func(t *testing.T) {
		b, c := newTestBreaker(1, 30*time.Second)
		ctx := context.Background()

		_ = b.Execute(ctx, fail)
		c.Advance(30 * time.Second)

		require.ErrorIs(t, b.Execute(ctx, fail), errBoom)
		snap := b.Snapshot()
		assert.Equal(t, resilience.StateOpen, snap.State)
		assert.Equal(t, c.Now().Add(30*time.Second), snap.NextAttemptAt)

		c.Advance(10 * time.Second)
		assert.ErrorIs(t, b.Execute(ctx, succeed), resilience.ErrBreakerOpen)
	})

	t.Run("panicking trial reopens and a later trial is admitted", func(t *testing.T) {
		b, c := newTestBreaker(1, 30*time.Second)
		ctx := context.Background()

		_ = b.Execute(ctx, fail)
		c.Advance(30 * time.Second)

		assert.PanicsWithValue(t, "driver bug", func() {
			_ = b.Execute(ctx, func(context.Context) error { panic("driver bug") })
		})
		assert.Equal(t, resilience.StateOpen, b.Snapshot().State)

		c.Advance(30 * time.Second)
		require.NoError(t, b.Execute(ctx, succeed))
		assert.Equal(t, resilience.StateClosed, b.Snapshot().State)
	})

	t.Run("panic while closed counts toward the threshold", func(t *testing.T) {
		b, _ := newTestBreaker(2, time.Minute)
		ctx := context.Background()

		assert.Panics(t, func() {
			_ = b.Execute(ctx, func(context.Context) error { panic("driver bug") })
		})
		assert.Equal(t, 1, b.Snapshot().Failures)
		assert.Equal(t, resilience.StateClosed, b.Snapshot().State)
	})

	t.Run("only one trial runs at a time", func(t *testing.T) {
		b, c := newTestBreaker(1, time.Second)
		ctx := context.Background()

		_ = b.Execute(ctx, fail)
		c.Advance(time.Second)

		release := make(chan struct{})
		started := make(chan struct{})
		var trialErr error
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			trialErr = b.Execute(ctx, func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		var rejected atomic.Int32
		var inner sync.WaitGroup
		for i := 0; i < 10; i++ {
			inner.Add(1)
			go func() {
				defer inner.Done()
				if errors.Is(b.Execute(ctx, succeed), resilience.ErrBreakerOpen) {
					rejected.Add(1)
				}
			}()
		}
		inner.Wait()
		assert.Equal(t, int32(10), rejected.Load())
		assert.Equal(t, resilience.StateHalfOpen, b.Snapshot().State)

		close(release)
		wg.Wait()
		require.NoError(t, trialErr)
		assert.Equal(t, resilience.StateClosed, b.Snapshot().State)
	})
}

func TestBreaker_Reset(t *testing.T) {
	b, _ := newTestBreaker(1, time.Hour)
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	require.Equal(t, resilience.StateOpen, b.Snapshot().State)

	b.Reset()
	snap := b.Snapshot()
	assert.Equal(t, resilience.StateClosed, snap.State)
	assert.Equal(t, 0, snap.Failures)
	assert.True(t, snap.NextAttemptAt.IsZero())
	assert.NoError(t, b.Execute(ctx, succeed))
}

func TestBreaker_StateListener(t *testing.T) {
	c := clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	type transition struct{ from, to resilience.State }
	var got []transition
	b := resilience.NewBreaker("pg", resilience.Settings{Threshold: 1, Cooldown: time.Second},
		resilience.WithClock(c),
		resilience.WithStateListener(func(name string, from, to resilience.State) {
			assert.Equal(t, "pg", name)
			got = append(got, transition{from, to})
		}))
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	c.Advance(time.Second)
	_ = b.Execute(ctx, succeed)

	assert.Equal(t, []transition{
		{resilience.StateClosed, resilience.StateOpen},
		{resilience.StateOpen, resilience.StateHalfOpen},
		{resilience.StateHalfOpen, resilience.StateClosed},
	}, got)
}

func TestRun_ReturnsValue(t *testing.T) {
	b, _ := newTestBreaker(1, time.Second)

	v, err := resilience.Run(context.Background(), b, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_ = b.Execute(context.Background(), fail)
	v, err = resilience.Run(context.Background(), b, func(context.Context) (int, error) {
		return 7, nil
	})
	assert.ErrorIs(t, err, resilience.ErrBreakerOpen)
	assert.Zero(t, v)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", resilience.StateClosed.String())
	assert.Equal(t, "open", resilience.StateOpen.String())
	assert.Equal(t, "half-open", resilience.StateHalfOpen.String())
	assert.Equal(t, "unknown", resilience.State(9).String())
}

func TestRegistry_Snapshots(t *testing.T) {
	r := resilience.NewRegistry(
		resilience.NewBreaker(resilience.BreakerRedis, resilience.Settings{Threshold: 5}),
		resilience.NewBreaker(resilience.BreakerOllama, resilience.Settings{Threshold: 3}),
		resilience.NewBreaker(resilience.BreakerPostgres, resilience.Settings{Threshold: 3}),
	)

	snaps := r.Snapshots()
	require.Len(t, snaps, 3)
	assert.Equal(t, "ollama", snaps[0].Name)
	assert.Equal(t, "postgres", snaps[1].Name)
	assert.Equal(t, "redis", snaps[2].Name)

	_, ok := r.Get("mysql")
	assert.False(t, ok)
	b, ok := r.Get("redis")
	require.True(t, ok)
	assert.Equal(t, 5, b.Snapshot().Threshold)
}
