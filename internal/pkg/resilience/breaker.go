// Package resilience guards calls to unreliable dependencies with a circuit
// breaker and a bounded retrier.
package resilience

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
)

// ErrBreakerOpen is returned without invoking the operation while a breaker is open.
var ErrBreakerOpen = errs.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Settings struct {
	Threshold int
	Timeout   time.Duration
	Cooldown  time.Duration
}

// StateListener observes transitions. It is called with the breaker lock released.
type StateListener func(name string, from, to State)

type Option func(*Breaker)

func WithClock(c clock.Clock) Option {
	return func(b *Breaker) { b.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Breaker) { b.logger = l }
}

func WithStateListener(fn StateListener) Option {
	return func(b *Breaker) { b.listeners = append(b.listeners, fn) }
}

// Breaker trips after Threshold consecutive failures and lets a single trial
// call through once Cooldown has elapsed.
type Breaker struct {
	name      string
	settings  Settings
	clock     clock.Clock
	logger    *slog.Logger
	listeners []StateListener

	mu            sync.Mutex
	state         State
	failures      int
	lastFailureAt time.Time
	nextAttemptAt time.Time
	trialInFlight bool
}

func NewBreaker(name string, settings Settings, opts ...Option) *Breaker {
	if settings.Threshold <= 0 {
		settings.Threshold = 1
	}
	b := &Breaker{
		name:     name,
		settings: settings,
		clock:    clock.NewRealClock(),
		logger:   slog.Default(),
		state:    StateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

// Timeout is the advisory per-call timeout; callers apply it to the context they pass in.
func (b *Breaker) Timeout() time.Duration { return b.settings.Timeout }

// Execute runs op unless the breaker is open, and records the outcome.
func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	trial, err := b.admit()
	if err != nil {
		return err
	}

	// A panicking op is recorded as a failure, which also releases a half-open trial.
	recorded := false
	defer func() {
		if !recorded {
			b.onFailure(trial)
		}
	}()

	opErr := op(ctx)
	recorded = true
	if opErr != nil {
		b.onFailure(trial)
		return opErr
	}
	b.onSuccess(trial)
	return nil
}

// Run is Execute for operations that return a value.
func Run[T any](ctx context.Context, b *Breaker, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, func(ctx context.Context) error {
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

func (b *Breaker) admit() (trial bool, err error) {
	b.mu.Lock()
	var from State
	transitioned := false
	switch b.state {
	case StateOpen:
		if b.clock.Now().Before(b.nextAttemptAt) {
			b.mu.Unlock()
			return false, ErrBreakerOpen
		}
		from, transitioned = b.state, true
		b.state = StateHalfOpen
		b.trialInFlight = true
		trial = true
	case StateHalfOpen:
		// Only one trial call at a time.
		if b.trialInFlight {
			b.mu.Unlock()
			return false, ErrBreakerOpen
		}
		b.trialInFlight = true
		trial = true
	}
	b.mu.Unlock()

	if transitioned {
		b.notify(from, StateHalfOpen)
	}
	return trial, nil
}

func (b *Breaker) onSuccess(trial bool) {
	b.mu.Lock()
	from := b.state
	if trial {
		b.trialInFlight = false
	}
	b.failures = 0
	if b.state == StateHalfOpen && trial {
		b.state = StateClosed
	}
	to := b.state
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
	}
}

func (b *Breaker) onFailure(trial bool) {
	b.mu.Lock()
	from := b.state
	now := b.clock.Now()
	b.failures++
	b.lastFailureAt = now
	if trial {
		b.trialInFlight = false
	}
	if (b.state == StateHalfOpen && trial) || (b.state == StateClosed && b.failures >= b.settings.Threshold) {
		b.state = StateOpen
		b.nextAttemptAt = now.Add(b.settings.Cooldown)
	}
	to := b.state
	failures := b.failures
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
		return
	}
	b.logger.Debug("breaker recorded failure",
		"breaker", b.name,
		"failures", failures,
		"threshold", b.settings.Threshold)
}

// Reset forces the breaker back to closed. Operator action only.
func (b *Breaker) Reset() {
	b.mu.Lock()
	from := b.state
	b.state = StateClosed
	b.failures = 0
	b.trialInFlight = false
	b.lastFailureAt = time.Time{}
	b.nextAttemptAt = time.Time{}
	b.mu.Unlock()

	if from != StateClosed {
		b.notify(from, StateClosed)
	}
}

type Snapshot struct {
	Name          string
	State         State
	Failures      int
	Threshold     int
	Timeout       time.Duration
	Cooldown      time.Duration
	LastFailureAt time.Time
	NextAttemptAt time.Time // zero unless open
}

func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		Name:          b.name,
		State:         b.state,
		Failures:      b.failures,
		Threshold:     b.settings.Threshold,
		Timeout:       b.settings.Timeout,
		Cooldown:      b.settings.Cooldown,
		LastFailureAt: b.lastFailureAt,
	}
	if b.state == StateOpen {
		s.NextAttemptAt = b.nextAttemptAt
	}
	return s
}

func (b *Breaker) notify(from, to State) {
	level := slog.LevelInfo
	if to == StateOpen {
		level = slog.LevelWarn
	}
	b.logger.Log(context.Background(), level, "breaker state changed",
		"breaker", b.name,
		"from", from.String(),
		"to", to.String())

	for _, fn := range b.listeners {
		fn(b.name, from, to)
	}
}
