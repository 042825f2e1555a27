//go:build e2e

package reservation_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"hotel-reservation/internal/handler/api"
	"hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/tests/common/builder"
	"hotel-reservation/tests/common/dbtest"
	"hotel-reservation/tests/common/httptest"
	"hotel-reservation/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	roomSearchURL   = "/api/rooms/search"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: reservation is priced and persisted", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().
			WithRoomType("king").
			WithDates("2024-01-16", "2024-01-18").
			WithGuests(2).
			WithBreakfast().
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, nil)

		var created response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, reservationsURL+"/"+created.ID.String(), w.Header().Get("Location"))

		// king 90/day for 2 days, plus breakfast 5 x 2 guests x 2 days
		require.Equal(t, int64(20000), created.TotalPriceCents)
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ID.String(), nil, nil)
		var fetched response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)

		if diff := cmp.Diff(created, fetched, cmpopts.EquateApproxTime(0)); diff != "" {
			t.Errorf("fetched reservation mismatch (-created +fetched):\n%s", diff)
		}
	})

	s.Run("Idempotent replay returns the original reservation", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
		headers := map[string]string{api.IdempotencyKeyHeader: "e2e-replay-key"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, headers)
		var first response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, headers)
		var second response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)

		require.Equal(t, first.ID, second.ID)
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB))
	})

	s.Run("Overlapping stay for the same room type is rejected", func() {
		t := s.T()

		existing := builder.NewReservationBuilder().
			WithDates("2024-02-01", "2024-02-05").
			MustBuildDomain()
		dbtest.InsertReservation(t, s.DB, existing)

		reqBody := builder.NewReservationBuilder().
			WithDates("2024-02-04", "2024-02-06").
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB))
	})

	s.Run("Back-to-back stays do not conflict", func() {
		t := s.T()

		existing := builder.NewReservationBuilder().
			WithDates("2024-03-01", "2024-03-03").
			MustBuildDomain()
		dbtest.InsertReservation(t, s.DB, existing)

		reqBody := builder.NewReservationBuilder().
			WithDates("2024-03-03", "2024-03-05").
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, nil)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)
		require.Equal(t, 2, dbtest.CountReservations(t, s.DB))
	})

	s.Run("Concurrent requests with one key create a single reservation", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().
			WithRoomType("presidential").
			WithDates("2024-04-10", "2024-04-12").
			BuildCreateRequestDTO()
		headers := map[string]string{api.IdempotencyKeyHeader: "e2e-concurrent-key"}

		const workers = 6
		codes := make([]int, workers)
		ids := make([]string, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, headers)
				codes[i] = w.Code
				var body response.ReservationResponse
				if w.Code < 300 {
					_ = json.Unmarshal(w.Body.Bytes(), &body)
				}
				ids[i] = body.ID.String()
			}(i)
		}
		wg.Wait()

		created := 0
		for i, code := range codes {
			require.Contains(t, []int{http.StatusCreated, http.StatusOK}, code)
			if code == http.StatusCreated {
				created++
			}
			require.Equal(t, ids[0], ids[i])
		}
		require.Equal(t, 1, created)
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB))
	})

	s.Run("Invalid date range is rejected", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().
			WithDates("2024-05-10", "2024-05-10").
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
		require.Equal(t, 0, dbtest.CountReservations(t, s.DB))
	})
}

// =============================================================================
// TestRoomSearch
// =============================================================================

func (s *ReservationSuite) TestRoomSearch() {
	s.Run("Assistant unreachable degrades to 503", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomSearchURL,
			map[string]any{"query": "a king room next weekend"}, nil)
		httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "temporarily unavailable")
	})
}
