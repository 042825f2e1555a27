package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/resilience"

	"github.com/google/uuid"
)

type Recorder interface {
	ObserveCache(operation, result string)
}

// ReservationCache is cache-aside over Client. Every call goes through the
// cache breaker and no error ever reaches the caller.
type ReservationCache struct {
	client  Client
	breaker *resilience.Breaker
	ttl     time.Duration
	prefix  string
	metrics Recorder
	logger  *slog.Logger
}

func NewReservationCache(
	client Client,
	breaker *resilience.Breaker,
	ttl time.Duration,
	prefix string,
	metrics Recorder,
	logger *slog.Logger,
) *ReservationCache {
	if prefix == "" {
		prefix = "reservation"
	}
	return &ReservationCache{
		client:  client,
		breaker: breaker,
		ttl:     ttl,
		prefix:  prefix,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *ReservationCache) Key(id uuid.UUID) string {
	return c.prefix + ":" + id.String()
}

func (c *ReservationCache) Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, bool) {
	var raw []byte
	err := c.guard(ctx, func(ctx context.Context) error {
		val, err := c.client.Get(ctx, c.Key(id))
		if errors.Is(err, ErrCacheMiss) {
			return nil
		}
		raw = val
		return err
	})
	if err != nil {
		c.swallow(ctx, "get", id, err)
		return nil, false
	}
	if raw == nil {
		c.metrics.ObserveCache("get", "miss")
		return nil, false
	}

	var entry cachedReservation
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.swallow(ctx, "decode", id, err)
		return nil, false
	}
	c.metrics.ObserveCache("get", "hit")
	return entry.toDomain(), true
}

func (c *ReservationCache) Set(ctx context.Context, res *reservation.Reservation) {
	raw, err := json.Marshal(fromDomain(res))
	if err != nil {
		c.swallow(ctx, "encode", res.ID(), err)
		return
	}
	err = c.guard(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, c.Key(res.ID()), raw, c.ttl)
	})
	if err != nil {
		c.swallow(ctx, "set", res.ID(), err)
		return
	}
	c.metrics.ObserveCache("set", "ok")
}

func (c *ReservationCache) Invalidate(ctx context.Context, id uuid.UUID) {
	err := c.guard(ctx, func(ctx context.Context) error {
		return c.client.Delete(ctx, c.Key(id))
	})
	if err != nil {
		c.swallow(ctx, "invalidate", id, err)
		return
	}
	c.metrics.ObserveCache("invalidate", "ok")
}

func (c *ReservationCache) guard(ctx context.Context, op func(ctx context.Context) error) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		if timeout := c.breaker.Timeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return op(ctx)
	})
}

func (c *ReservationCache) swallow(ctx context.Context, operation string, id uuid.UUID, err error) {
	result := "error"
	level := slog.LevelWarn
	if errors.Is(err, resilience.ErrBreakerOpen) {
		result = "breaker_open"
		level = slog.LevelDebug
	}
	c.metrics.ObserveCache(operation, result)
	correlation.Logger(ctx, c.logger).Log(ctx, level, "reservation cache degraded",
		"operation", operation,
		"reservation_id", id,
		"error", err)
}

type cachedReservation struct {
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
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

func fromDomain(r *reservation.Reservation) cachedReservation {
	return cachedReservation{
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
		UpdatedAt:        r.UpdatedAt(),
	}
}

func (e cachedReservation) toDomain() *reservation.Reservation {
	return reservation.Reconstruct(
		e.ID,
		reservation.RoomType(e.RoomType),
		e.CheckIn,
		e.CheckOut,
		e.NumGuests,
		e.IncludeBreakfast,
		e.TotalPriceCents,
		e.PricingBreakdown,
		e.IdempotencyKey,
		e.CreatedAt,
		e.UpdatedAt,
	)
}
