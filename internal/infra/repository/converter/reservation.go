package converter

import (
	"encoding/json"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra/pgsql"
	"hotel-reservation/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) (pgsql.CreateReservationParams, error) {
	breakdown, err := json.Marshal(res.Breakdown())
	if err != nil {
		return pgsql.CreateReservationParams{}, err
	}
	return pgsql.CreateReservationParams{
		ID:               res.ID(),
		RoomType:         res.RoomType().String(),
		CheckIn:          pgconv.TimeToPgtype(res.CheckIn()),
		CheckOut:         pgconv.TimeToPgtype(res.CheckOut()),
		NumGuests:        int32(res.Guests()), // #nosec G115 -- bounded by MaxGuests
		IncludeBreakfast: res.IncludeBreakfast(),
		TotalPriceCents:  res.Price().Cents(),
		PricingBreakdown: breakdown,
		IdempotencyKey:   pgconv.StringPtrToPgtype(res.IdempotencyKeyValue()),
		CreatedAt:        pgconv.TimeToPgtype(res.CreatedAt()),
	}, nil
}

func ReservationToDomain(row pgsql.ReservationRow) (*reservation.Reservation, error) {
	var breakdown reservation.PriceBreakdown
	if len(row.PricingBreakdown) > 0 {
		if err := json.Unmarshal(row.PricingBreakdown, &breakdown); err != nil {
			return nil, err
		}
	}
	return reservation.Reconstruct(
		row.ID,
		reservation.RoomType(row.RoomType),
		pgconv.TimeFromPgtype(row.CheckIn),
		pgconv.TimeFromPgtype(row.CheckOut),
		int(row.NumGuests),
		row.IncludeBreakfast,
		row.TotalPriceCents,
		breakdown,
		pgconv.StringPtrFromPgtype(row.IdempotencyKey),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
