package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRoomType       = errors.New("invalid room type")
	ErrInvalidDateRange      = errors.New("check-out must be after check-in")
	ErrInvalidGuestCount     = errors.New("guest count out of range")
	ErrInvalidIdempotencyKey = errors.New("invalid idempotency key")
	ErrNegativePrice         = errors.New("price cannot be negative")
)

type Reservation struct {
	id               uuid.UUID
	roomType         RoomType
	period           StayPeriod
	guests           GuestCount
	includeBreakfast bool
	price            Money
	breakdown        PriceBreakdown
	idempotencyKey   *IdempotencyKey
	createdAt        time.Time
	updatedAt        time.Time
}

func NewReservation(
	stay Stay,
	breakdown PriceBreakdown,
	key *IdempotencyKey,
	now time.Time,
) (*Reservation, error) {
	if !stay.RoomType.IsValid() {
		return nil, ErrInvalidRoomType
	}
	if stay.Period.IsZero() {
		return nil, ErrInvalidDateRange
	}
	guests, err := NewGuestCount(stay.Guests)
	if err != nil {
		return nil, err
	}
	price, err := NewMoney(breakdown.TotalCents)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Reservation{
		id:               uuid.New(),
		roomType:         stay.RoomType,
		period:           stay.Period,
		guests:           guests,
		includeBreakfast: stay.IncludeBreakfast,
		price:            price,
		breakdown:        breakdown,
		idempotencyKey:   key,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a persisted reservation without re-validating it.
func Reconstruct(
	id uuid.UUID,
	roomType RoomType,
	checkIn, checkOut time.Time,
	guests int,
	includeBreakfast bool,
	totalCents int64,
	breakdown PriceBreakdown,
	idempotencyKey *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	var key *IdempotencyKey
	if idempotencyKey != nil {
		key = &IdempotencyKey{value: *idempotencyKey}
	}
	return &Reservation{
		id:               id,
		roomType:         roomType,
		period:           StayPeriod{checkIn: checkIn.UTC(), checkOut: checkOut.UTC()},
		guests:           GuestCount{value: guests},
		includeBreakfast: includeBreakfast,
		price:            Money{cents: totalCents},
		breakdown:        breakdown,
		idempotencyKey:   key,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ConflictsWith reports whether both reservations hold the same room type on a shared night.
func (r *Reservation) ConflictsWith(roomType RoomType, period StayPeriod) bool {
	return r.roomType == roomType && r.period.Overlaps(period)
}

func (r *Reservation) ID() uuid.UUID                   { return r.id }
func (r *Reservation) RoomType() RoomType              { return r.roomType }
func (r *Reservation) Period() StayPeriod              { return r.period }
func (r *Reservation) CheckIn() time.Time              { return r.period.CheckIn() }
func (r *Reservation) CheckOut() time.Time             { return r.period.CheckOut() }
func (r *Reservation) Guests() int                     { return r.guests.Value() }
func (r *Reservation) IncludeBreakfast() bool          { return r.includeBreakfast }
func (r *Reservation) Price() Money                    { return r.price }
func (r *Reservation) Breakdown() PriceBreakdown       { return r.breakdown }
func (r *Reservation) IdempotencyKey() *IdempotencyKey { return r.idempotencyKey }
func (r *Reservation) CreatedAt() time.Time            { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time            { return r.updatedAt }

// IdempotencyKeyValue returns nil when the reservation was created without a key.
func (r *Reservation) IdempotencyKeyValue() *string {
	if r.idempotencyKey == nil {
		return nil
	}
	v := r.idempotencyKey.String()
	return &v
}
