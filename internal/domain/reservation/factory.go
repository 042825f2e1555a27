package reservation

import (
	"hotel-reservation/internal/pkg/clock"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateReservation prices the stay and builds a new, not yet persisted reservation.
func (f *Factory) CreateReservation(stay Stay, key *IdempotencyKey) (*Reservation, error) {
	breakdown, err := f.PriceCalculator.Calculate(stay)
	if err != nil {
		return nil, err
	}
	return NewReservation(stay, breakdown, key, f.Clock.Now())
}
