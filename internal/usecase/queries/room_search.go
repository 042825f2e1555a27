package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"
)

var (
	ErrEmptyQuery        = errs.New("search query is empty")
	ErrIntentUnavailable = errs.New("room search assistant temporarily unavailable")
)

// RoomIntent is what the assistant understood from a free-text query. Nil
// fields were absent or unusable.
type RoomIntent struct {
	RoomType        *string  `json:"roomType"`
	MaxPriceDollars *float64 `json:"maxPriceDollars"`
	NumGuests       *int     `json:"numGuests"`
	CheckIn         *string  `json:"checkIn"`
	CheckOut        *string  `json:"checkOut"`
}

type IntentParser interface {
	ParseIntent(ctx context.Context, query string) (RoomIntent, error)
}

type Recommendation struct {
	RoomType         reservation.RoomType
	BasePriceDollars float64
	Description      string
	Features         []string
	Available        *bool // nil when the intent carries no usable dates
}

type RoomSearchResult struct {
	Query           string
	Intent          RoomIntent
	Recommendations []Recommendation
}

//go:generate mockgen -source=room_search.go -destination=../../../tests/mock/queries/room_search.go -package=queriesmock
type RoomSearchQueries interface {
	Search(ctx context.Context, query string) (*RoomSearchResult, error)
}

type roomSearchQueriesImpl struct {
	parser IntentParser
	store  shared.ReservationStore
	logger *slog.Logger
}

func NewRoomSearchQueries(parser IntentParser, store shared.ReservationStore, logger *slog.Logger) RoomSearchQueries {
	return &roomSearchQueriesImpl{parser: parser, store: store, logger: logger}
}

func (q *roomSearchQueriesImpl) Search(ctx context.Context, query string) (*RoomSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	intent, err := q.parser.ParseIntent(ctx, query)
	if err != nil {
		correlation.Logger(ctx, q.logger).Warn("intent extraction failed", "error", err)
		return nil, errs.Mark(err, ErrIntentUnavailable)
	}

	return &RoomSearchResult{
		Query:           query,
		Intent:          intent,
		Recommendations: q.recommend(ctx, intent),
	}, nil
}

func (q *roomSearchQueriesImpl) recommend(ctx context.Context, intent RoomIntent) []Recommendation {
	period, hasDates := intentPeriod(intent)

	recs := make([]Recommendation, 0, len(reservation.RoomTypes))
	for _, listing := range reservation.Catalogue() {
		if intent.RoomType != nil && *intent.RoomType != listing.Type.String() {
			continue
		}
		if intent.MaxPriceDollars != nil && *intent.MaxPriceDollars > 0 && listing.BasePriceDollars > *intent.MaxPriceDollars {
			continue
		}

		rec := Recommendation{
			RoomType:         listing.Type,
			BasePriceDollars: listing.BasePriceDollars,
			Description:      listing.Description,
			Features:         listing.Features,
		}
		if hasDates {
			rec.Available = q.availability(ctx, listing.Type, period)
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].BasePriceDollars < recs[j].BasePriceDollars
	})
	return recs
}

// availability returns nil when the store cannot answer.
func (q *roomSearchQueriesImpl) availability(ctx context.Context, roomType reservation.RoomType, period reservation.StayPeriod) *bool {
	overlapping, err := q.store.HasOverlap(ctx, roomType, period.CheckIn(), period.CheckOut())
	if err != nil {
		correlation.Logger(ctx, q.logger).Warn("availability check failed",
			"room_type", roomType,
			"error", err)
		return nil
	}
	available := !overlapping
	return &available
}

func intentPeriod(intent RoomIntent) (reservation.StayPeriod, bool) {
	if intent.CheckIn == nil || intent.CheckOut == nil {
		return reservation.StayPeriod{}, false
	}
	in, err := reservation.ParseDate(*intent.CheckIn)
	if err != nil {
		return reservation.StayPeriod{}, false
	}
	out, err := reservation.ParseDate(*intent.CheckOut)
	if err != nil {
		return reservation.StayPeriod{}, false
	}
	period, err := reservation.NewStayPeriod(in, out)
	if err != nil {
		return reservation.StayPeriod{}, false
	}
	return period, true
}
