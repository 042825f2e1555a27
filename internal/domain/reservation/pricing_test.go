//go:build unit

package reservation_test

import (
	"testing"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPriceCalculator(t *testing.T) {
	calculator := reservation.NewStandardPriceCalculator()

	testCases := []struct {
		name          string
		stay          *builder.ReservationBuilder
		wantTotal     int64
		wantDays      int
		wantPerDay    int64
		wantWeekendAt []int
	}{
		{
			name:       "single weekday night in junior",
			stay:       builder.NewReservationBuilder().WithDates("2024-01-16", "2024-01-17"),
			wantTotal:  6000,
			wantDays:   1,
			wantPerDay: 6000,
		},
		{
			name:          "saturday night carries the weekend premium",
			stay:          builder.NewReservationBuilder().WithDates("2024-01-06", "2024-01-07"),
			wantTotal:     7500,
			wantDays:      1,
			wantPerDay:    6000,
			wantWeekendAt: []int{0},
		},
		{
			name:       "five weekday nights get the four day discount",
			stay:       builder.NewReservationBuilder().WithDates("2024-01-15", "2024-01-20"),
			wantTotal:  28000,
			wantDays:   5,
			wantPerDay: 5600,
		},
		{
			name:       "breakfast is charged per guest per day",
			stay:       builder.NewReservationBuilder().WithDates("2024-01-16", "2024-01-17").WithGuests(2).WithBreakfast(),
			wantTotal:  7000,
			wantDays:   1,
			wantPerDay: 6000,
		},
		{
			name: "week in presidential with breakfast for four",
			stay: builder.NewReservationBuilder().
				WithRoomType("presidential").
				WithDates("2024-01-06", "2024-01-13").
				WithGuests(4).
				WithBreakfast(),
			wantTotal:     120600,
			wantDays:      7,
			wantPerDay:    14200,
			wantWeekendAt: []int{0, 1},
		},
		{
			name:          "ten nights get the largest discount",
			stay:          builder.NewReservationBuilder().WithDates("2024-01-15", "2024-01-25"),
			wantTotal:     50400,
			wantDays:      10,
			wantPerDay:    4800,
			wantWeekendAt: []int{5, 6},
		},
		{
			name:       "two nights in king",
			stay:       builder.NewReservationBuilder().WithRoomType("king").WithDates("2024-02-01", "2024-02-03"),
			wantTotal:  18000,
			wantDays:   2,
			wantPerDay: 9000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stay, err := tc.stay.BuildStay()
			require.NoError(t, err)

			actual, err := calculator.Calculate(stay)
			require.NoError(t, err)

			assert.Equal(t, tc.wantTotal, actual.TotalCents)
			assert.Equal(t, tc.wantDays, actual.Days)
			assert.Equal(t, tc.wantPerDay, actual.PerDayFinalCents)
			require.Len(t, actual.Breakdown, tc.wantDays)

			var sum int64
			weekend := []int{}
			for i, day := range actual.Breakdown {
				sum += day.BaseCents + day.BreakfastCents
				if day.BaseCents != actual.PerDayFinalCents {
					weekend = append(weekend, i)
				}
			}
			assert.Equal(t, actual.TotalCents, sum)
			if tc.wantWeekendAt == nil {
				tc.wantWeekendAt = []int{}
			}
			assert.Equal(t, tc.wantWeekendAt, weekend)
		})
	}
}

func TestStandardPriceCalculator_Breakdown(t *testing.T) {
	stay, err := builder.NewReservationBuilder().
		WithDates("2024-01-05", "2024-01-08").
		WithGuests(1).
		WithBreakfast().
		BuildStay()
	require.NoError(t, err)

	actual, err := reservation.NewStandardPriceCalculator().Calculate(stay)
	require.NoError(t, err)

	expected := []reservation.DayCharge{
		{Date: "2024-01-05", BaseCents: 6000, BreakfastCents: 500},
		{Date: "2024-01-06", BaseCents: 7500, BreakfastCents: 500},
		{Date: "2024-01-07", BaseCents: 7500, BreakfastCents: 500},
	}
	if diff := cmp.Diff(expected, actual.Breakdown); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(22500), actual.TotalCents)
}

func TestStandardPriceCalculator_WeekendRoundsHalfUp(t *testing.T) {
	// 142 * 1.25 = 177.5 rounds to 178 per weekend day.
	stay, err := builder.NewReservationBuilder().
		WithRoomType("presidential").
		WithDates("2024-01-06", "2024-01-13").
		BuildStay()
	require.NoError(t, err)

	actual, err := reservation.NewStandardPriceCalculator().Calculate(stay)
	require.NoError(t, err)
	assert.Equal(t, int64(17800), actual.Breakdown[0].BaseCents)
	assert.Equal(t, int64(17800), actual.Breakdown[1].BaseCents)
	assert.Equal(t, int64(14200), actual.Breakdown[2].BaseCents)
}

func TestStandardPriceCalculator_Errors(t *testing.T) {
	calculator := reservation.NewStandardPriceCalculator()
	valid, err := builder.NewReservationBuilder().BuildStay()
	require.NoError(t, err)

	testCases := []struct {
		name  string
		stay  reservation.Stay
		errIs error
	}{
		{
			name:  "unknown room type",
			stay:  reservation.Stay{RoomType: "penthouse", Period: valid.Period, Guests: 2},
			errIs: reservation.ErrInvalidRoomType,
		},
		{
			name:  "zero period",
			stay:  reservation.Stay{RoomType: reservation.RoomJunior, Guests: 2},
			errIs: reservation.ErrInvalidDateRange,
		},
		{
			name:  "no guests",
			stay:  reservation.Stay{RoomType: reservation.RoomJunior, Period: valid.Period, Guests: 0},
			errIs: reservation.ErrInvalidGuestCount,
		},
		{
			name:  "too many guests",
			stay:  reservation.Stay{RoomType: reservation.RoomJunior, Period: valid.Period, Guests: reservation.MaxGuests + 1},
			errIs: reservation.ErrInvalidGuestCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calculator.Calculate(tc.stay)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestBaseRate(t *testing.T) {
	rate, ok := reservation.BaseRate(reservation.RoomKing)
	assert.True(t, ok)
	assert.Equal(t, int64(90), rate)

	_, ok = reservation.BaseRate("penthouse")
	assert.False(t, ok)
}
