// Package guarded puts the store behind a retrier and a circuit breaker.
package guarded

import (
	"context"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/resilience"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReservationStore wraps each call as retrier(breaker(op with timeout)), so a
// breaker that trips mid-sequence short-circuits the remaining attempts.
//
// Definitive answers (not found, duplicate id or key, conflict) are handed back to
// the caller without retrying and count as breaker successes.
type ReservationStore struct {
	inner   shared.ReservationStore
	breaker *resilience.Breaker
	retrier *resilience.Retrier
}

func NewReservationStore(
	inner shared.ReservationStore,
	breaker *resilience.Breaker,
	retrier *resilience.Retrier,
) *ReservationStore {
	return &ReservationStore{inner: inner, breaker: breaker, retrier: retrier}
}

func (s *ReservationStore) Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	return call(ctx, s, func(ctx context.Context) (*reservation.Reservation, error) {
		return s.inner.Create(ctx, res)
	})
}

func (s *ReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return call(ctx, s, func(ctx context.Context) (*reservation.Reservation, error) {
		return s.inner.FindByID(ctx, id)
	})
}

func (s *ReservationStore) FindByIdempotencyKey(ctx context.Context, key string) (*reservation.Reservation, error) {
	return call(ctx, s, func(ctx context.Context) (*reservation.Reservation, error) {
		return s.inner.FindByIdempotencyKey(ctx, key)
	})
}

func (s *ReservationStore) HasOverlap(ctx context.Context, roomType reservation.RoomType, checkIn, checkOut time.Time) (bool, error) {
	return call(ctx, s, func(ctx context.Context) (bool, error) {
		return s.inner.HasOverlap(ctx, roomType, checkIn, checkOut)
	})
}

// definitive smuggles a store answer through the breaker as a success.
type definitive struct{ err error }

func call[T any](ctx context.Context, s *ReservationStore, op func(ctx context.Context) (T, error)) (T, error) {
	// The retry sequence outlives an abandoning caller.
	ctx = context.WithoutCancel(ctx)

	type answer struct {
		value T
		def   *definitive
	}

	got, err := resilience.Retry(ctx, s.retrier, func(ctx context.Context) (answer, error) {
		return resilience.Run(ctx, s.breaker, func(ctx context.Context) (answer, error) {
			if timeout := s.breaker.Timeout(); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			v, opErr := op(ctx)
			if opErr != nil {
				if infra.IsDefinitive(opErr) {
					return answer{def: &definitive{err: opErr}}, nil
				}
				return answer{}, opErr
			}
			return answer{value: v}, nil
		})
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if got.def != nil {
		var zero T
		return zero, got.def.err
	}
	return got.value, nil
}
