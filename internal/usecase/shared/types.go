package shared

import (
	"time"

	"github.com/google/uuid"
)

const EventReservationCreated = "reservation.created"

// ReservationCreatedEvent is published once per freshly created reservation.
type ReservationCreatedEvent struct {
	ReservationID   uuid.UUID `json:"reservationId"`
	RoomType        string    `json:"roomType"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	NumGuests       int       `json:"numGuests"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	IdempotencyKey  *string   `json:"idempotencyKey,omitempty"`
	CorrelationID   string    `json:"correlationId,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}
