package request

import (
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/usecase/commands"
)

type CreateReservationRequest struct {
	RoomType         string `json:"roomType" binding:"required,oneof=junior king presidential"`
	CheckIn          string `json:"checkIn" binding:"required"`
	CheckOut         string `json:"checkOut" binding:"required"`
	NumGuests        int    `json:"numGuests" binding:"required,min=1,max=4"`
	IncludeBreakfast bool   `json:"includeBreakfast"`
}

func (r CreateReservationRequest) ToCommand(idempotencyKey string) (commands.CreateReservationCommand, error) {
	checkIn, err := reservation.ParseDate(r.CheckIn)
	if err != nil {
		return commands.CreateReservationCommand{}, err
	}
	checkOut, err := reservation.ParseDate(r.CheckOut)
	if err != nil {
		return commands.CreateReservationCommand{}, err
	}
	return commands.CreateReservationCommand{
		RoomType:         r.RoomType,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Guests:           r.NumGuests,
		IncludeBreakfast: r.IncludeBreakfast,
		IdempotencyKey:   idempotencyKey,
	}, nil
}

type RoomSearchRequest struct {
	Query string `json:"query" binding:"required,max=500"`
}
