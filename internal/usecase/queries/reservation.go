package queries

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrStoreUnavailable    = errs.New("reservation storage unavailable")
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock
type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

type reservationQueriesImpl struct {
	store  shared.ReservationStore
	cache  shared.ReservationCache
	logger *slog.Logger
}

func NewReservationQueries(
	store shared.ReservationStore,
	cache shared.ReservationCache,
	logger *slog.Logger,
) ReservationQueries {
	return &reservationQueriesImpl{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetByID reads through the cache; the store stays authoritative.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if cached, ok := q.cache.Get(ctx, id); ok {
		return cached, nil
	}

	res, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		correlation.Logger(ctx, q.logger).Error("failed to load reservation",
			"reservation_id", id,
			"error", err)
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	q.cache.Set(ctx, res)
	return res, nil
}
