//go:build unit || e2e

package builder

import (
	"time"

	"hotel-reservation/internal/domain/reservation"
	reqdto "hotel-reservation/internal/handler/dto/request"
	"hotel-reservation/internal/usecase/commands"
)

type ReservationBuilder struct {
	RoomType         string
	CheckIn          string
	CheckOut         string
	Guests           int
	IncludeBreakfast bool
	IdempotencyKey   string
	CreatedAt        time.Time
}

// NewReservationBuilder defaults to a two-night junior stay priced at 12000 cents.
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		RoomType:  "junior",
		CheckIn:   "2024-01-16",
		CheckOut:  "2024-01-18",
		Guests:    2,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithRoomType(rt string) *ReservationBuilder {
	b.RoomType = rt
	return b
}

func (b *ReservationBuilder) WithDates(checkIn, checkOut string) *ReservationBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *ReservationBuilder) WithGuests(n int) *ReservationBuilder {
	b.Guests = n
	return b
}

func (b *ReservationBuilder) WithBreakfast() *ReservationBuilder {
	b.IncludeBreakfast = true
	return b
}

func (b *ReservationBuilder) WithIdempotencyKey(key string) *ReservationBuilder {
	b.IdempotencyKey = key
	return b
}

// Build methods
func (b *ReservationBuilder) BuildStay() (reservation.Stay, error) {
	roomType, err := reservation.ParseRoomType(b.RoomType)
	if err != nil {
		return reservation.Stay{}, err
	}
	period, err := reservation.NewStayPeriod(parseDateOrZero(b.CheckIn), parseDateOrZero(b.CheckOut))
	if err != nil {
		return reservation.Stay{}, err
	}
	return reservation.Stay{
		RoomType:         roomType,
		Period:           period,
		Guests:           b.Guests,
		IncludeBreakfast: b.IncludeBreakfast,
	}, nil
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	stay, err := b.BuildStay()
	if err != nil {
		return nil, err
	}
	breakdown, err := reservation.NewStandardPriceCalculator().Calculate(stay)
	if err != nil {
		return nil, err
	}
	var key *reservation.IdempotencyKey
	if b.IdempotencyKey != "" {
		k, err := reservation.NewIdempotencyKey(b.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		key = &k
	}
	return reservation.NewReservation(stay, breakdown, key, b.CreatedAt)
}

// MustBuildDomain panics on invalid builder state; for fixtures only.
func (b *ReservationBuilder) MustBuildDomain() *reservation.Reservation {
	res, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return res
}

func (b *ReservationBuilder) BuildCommand() commands.CreateReservationCommand {
	return commands.CreateReservationCommand{
		RoomType:         b.RoomType,
		CheckIn:          parseDateOrZero(b.CheckIn),
		CheckOut:         parseDateOrZero(b.CheckOut),
		Guests:           b.Guests,
		IncludeBreakfast: b.IncludeBreakfast,
		IdempotencyKey:   b.IdempotencyKey,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomType:         b.RoomType,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		NumGuests:        b.Guests,
		IncludeBreakfast: b.IncludeBreakfast,
	}
}

func parseDateOrZero(s string) time.Time {
	t, err := reservation.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
