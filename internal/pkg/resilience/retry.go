package resilience

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"
)

type RetryPolicy struct {
	MaxAttempts int // total attempts, including the first
	BaseDelay   time.Duration
	Jitter      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   200 * time.Millisecond,
		Jitter:      100 * time.Millisecond,
	}
}

type RetryOption func(*Retrier)

// WithSleeper replaces time.Sleep between attempts.
func WithSleeper(sleep func(time.Duration)) RetryOption {
	return func(r *Retrier) { r.sleep = sleep }
}

// WithJitterSource replaces the random source; it must return a value in [0, n).
func WithJitterSource(fn func(n int64) int64) RetryOption {
	return func(r *Retrier) { r.jitter = fn }
}

func WithRetryLogger(l *slog.Logger) RetryOption {
	return func(r *Retrier) { r.logger = l }
}

// Retrier re-runs a failing operation with exponential backoff and jitter.
// Waits between attempts run to completion even if the caller gives up.
type Retrier struct {
	policy RetryPolicy
	sleep  func(time.Duration)
	jitter func(n int64) int64
	logger *slog.Logger
}

func NewRetrier(policy RetryPolicy, opts ...RetryOption) *Retrier {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	r := &Retrier{
		policy: policy,
		sleep:  time.Sleep,
		jitter: cryptoRandInt63n,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrier) Policy() RetryPolicy { return r.policy }

// Do retries on any error and returns the last attempt's error unchanged.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if attempt == r.policy.MaxAttempts {
			return err
		}

		wait := r.Backoff(attempt)
		r.logger.Warn("retrying operation",
			"attempt", attempt,
			"max_attempts", r.policy.MaxAttempts,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())
		r.sleep(wait)
	}
	return err
}

// Backoff is the wait after failed attempt k (1-based): base*2^(k-1) plus jitter in [0, Jitter).
func (r *Retrier) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	wait := time.Duration(1<<(attempt-1)) * r.policy.BaseDelay
	return wait + time.Duration(r.jitter(int64(r.policy.Jitter)))
}

// Retry is Do for operations that return a value.
func Retry[T any](ctx context.Context, r *Retrier, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a positive value above
	return int64(uval) % n
}
