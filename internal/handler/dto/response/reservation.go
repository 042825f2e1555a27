package response

import (
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID               uuid.UUID                  `json:"id"`
	RoomType         string                     `json:"roomType"`
	CheckIn          time.Time                  `json:"checkIn"`
	CheckOut         time.Time                  `json:"checkOut"`
	NumGuests        int                        `json:"numGuests"`
	IncludeBreakfast bool                       `json:"includeBreakfast"`
	TotalPriceCents  int64                      `json:"totalPriceCents"`
	PricingBreakdown reservation.PriceBreakdown `json:"pricingBreakdown"`
	IdempotencyKey   *string                    `json:"idempotencyKey"`
	CreatedAt        time.Time                  `json:"createdAt"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:               r.ID(),
		RoomType:         r.RoomType().String(),
		CheckIn:          r.CheckIn(),
		CheckOut:         r.CheckOut(),
		NumGuests:        r.Guests(),
		IncludeBreakfast: r.IncludeBreakfast(),
		TotalPriceCents:  r.Price().Cents(),
		PricingBreakdown: r.Breakdown(),
		IdempotencyKey:   r.IdempotencyKeyValue(),
		CreatedAt:        r.CreatedAt(),
	}
}

type RoomIntentResponse struct {
	RoomType        *string  `json:"roomType"`
	MaxPriceDollars *float64 `json:"maxPriceDollars"`
	NumGuests       *int     `json:"numGuests"`
	CheckIn         *string  `json:"checkIn"`
	CheckOut        *string  `json:"checkOut"`
}

type RecommendationResponse struct {
	Type             string   `json:"type"`
	BasePriceDollars float64  `json:"basePriceDollars"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	Available        *bool    `json:"available"`
}

type RoomSearchResponse struct {
	Query           string                   `json:"query"`
	Intent          RoomIntentResponse       `json:"intent"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

func FromRoomSearchResult(r *queries.RoomSearchResult) (*RoomSearchResponse, error) {
	resp := &RoomSearchResponse{
		Query:           r.Query,
		Recommendations: make([]RecommendationResponse, 0, len(r.Recommendations)),
	}
	if err := copier.Copy(&resp.Intent, &r.Intent); err != nil {
		return nil, err
	}
	for _, rec := range r.Recommendations {
		var item RecommendationResponse
		if err := copier.Copy(&item, &rec); err != nil {
			return nil, err
		}
		item.Type = rec.RoomType.String()
		resp.Recommendations = append(resp.Recommendations, item)
	}
	return resp, nil
}
