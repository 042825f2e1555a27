package reservation

import (
	"strings"
	"time"
)

const (
	MaxGuests               = 4
	MaxIdempotencyKeyLength = 255
	DateLayout              = "2006-01-02"
)

// StayPeriod is a half-open [checkIn, checkOut) range of UTC calendar days.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := truncateToUTCDate(checkIn)
	out := truncateToUTCDate(checkOut)
	if !in.Before(out) {
		return StayPeriod{}, ErrInvalidDateRange
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and keeps only the UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateRange
	}
	return truncateToUTCDate(t), nil
}

func truncateToUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

func (p StayPeriod) IsZero() bool {
	return p.checkIn.IsZero() && p.checkOut.IsZero()
}

// Overlaps treats touching ranges (one's check-out equal to the other's check-in) as disjoint.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

type GuestCount struct {
	value int
}

func NewGuestCount(n int) (GuestCount, error) {
	if n < 1 || n > MaxGuests {
		return GuestCount{}, ErrInvalidGuestCount
	}
	return GuestCount{value: n}, nil
}

func (g GuestCount) Value() int {
	return g.value
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

type IdempotencyKey struct {
	value string
}

func NewIdempotencyKey(s string) (IdempotencyKey, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxIdempotencyKeyLength {
		return IdempotencyKey{}, ErrInvalidIdempotencyKey
	}
	return IdempotencyKey{value: s}, nil
}

func (k IdempotencyKey) String() string {
	return k.value
}

func (k IdempotencyKey) IsZero() bool {
	return k.value == ""
}
