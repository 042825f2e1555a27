package reservation

import "time"

// Nightly base rates in whole currency units.
var baseRates = map[RoomType]int64{
	RoomJunior:       60,
	RoomKing:         90,
	RoomPresidential: 150,
}

const (
	breakfastPerGuest = 5
	weekendPercent    = 125
)

// Stay is the input to pricing.
type Stay struct {
	RoomType         RoomType
	Period           StayPeriod
	Guests           int
	IncludeBreakfast bool
}

type DayCharge struct {
	Date           string `json:"date"`
	BaseCents      int64  `json:"baseCents"`
	BreakfastCents int64  `json:"breakfastCents"`
}

type PriceBreakdown struct {
	TotalCents       int64       `json:"totalCents"`
	Days             int         `json:"days"`
	PerDayFinalCents int64       `json:"perDayFinalCents"`
	Breakdown        []DayCharge `json:"breakdown"`
}

type PriceCalculator interface {
	Calculate(stay Stay) (PriceBreakdown, error)
}

type StandardPriceCalculator struct{}

func NewStandardPriceCalculator() *StandardPriceCalculator {
	return &StandardPriceCalculator{}
}

func BaseRate(rt RoomType) (int64, bool) {
	rate, ok := baseRates[rt]
	return rate, ok
}

func (pc *StandardPriceCalculator) Calculate(stay Stay) (PriceBreakdown, error) {
	base, ok := baseRates[stay.RoomType]
	if !ok {
		return PriceBreakdown{}, ErrInvalidRoomType
	}
	if stay.Period.IsZero() || stay.Period.Nights() <= 0 {
		return PriceBreakdown{}, ErrInvalidDateRange
	}
	if _, err := NewGuestCount(stay.Guests); err != nil {
		return PriceBreakdown{}, err
	}

	days := stay.Period.Nights()
	perDay := base - lengthDiscount(days)

	var breakfastCents int64
	if stay.IncludeBreakfast {
		breakfastCents = breakfastPerGuest * 100 * int64(stay.Guests)
	}

	result := PriceBreakdown{
		Days:             days,
		PerDayFinalCents: perDay * 100,
		Breakdown:        make([]DayCharge, 0, days),
	}
	for i := 0; i < days; i++ {
		day := stay.Period.CheckIn().AddDate(0, 0, i)
		dayPrice := perDay
		if isWeekend(day) {
			// Rounded half-up per day, before summation.
			dayPrice = (perDay*weekendPercent + 50) / 100
		}
		charge := DayCharge{
			Date:           day.Format(DateLayout),
			BaseCents:      dayPrice * 100,
			BreakfastCents: breakfastCents,
		}
		result.Breakdown = append(result.Breakdown, charge)
		result.TotalCents += charge.BaseCents + charge.BreakfastCents
	}
	return result, nil
}

func lengthDiscount(days int) int64 {
	switch {
	case days >= 10:
		return 12
	case days >= 7:
		return 8
	case days >= 4:
		return 4
	default:
		return 0
	}
}

func isWeekend(day time.Time) bool {
	wd := day.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
