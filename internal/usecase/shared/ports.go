package shared

import (
	"context"
	"time"

	"hotel-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports.go -package=sharedmock

// ReservationStore is the durable reservation storage. Errors carry an
// infra.RepositoryErrorKind: NotFound, DuplicateKey and Conflict are answers,
// anything else is a failure of the store itself.
type ReservationStore interface {
	Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*reservation.Reservation, error)
	HasOverlap(ctx context.Context, roomType reservation.RoomType, checkIn, checkOut time.Time) (bool, error)
}

// ReservationCache never fails: errors degrade to a miss or a no-op.
type ReservationCache interface {
	Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, bool)
	Set(ctx context.Context, res *reservation.Reservation)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error
}
