//go:build unit

package guarded_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/guarded"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/resilience"
	"hotel-reservation/tests/common/builder"
	sharedmock "hotel-reservation/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GuardedStoreTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	inner   *sharedmock.MockReservationStore
	clock   *clock.MockClock
	breaker *resilience.Breaker
	waits   []time.Duration
	store   *guarded.ReservationStore
}

func (s *GuardedStoreTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.inner = sharedmock.NewMockReservationStore(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.breaker = resilience.NewBreaker(resilience.BreakerPostgres, resilience.Settings{
		Threshold: 3,
		Timeout:   5 * time.Second,
		Cooldown:  30 * time.Second,
	}, resilience.WithClock(s.clock))
	s.waits = nil
	retrier := resilience.NewRetrier(resilience.DefaultRetryPolicy(),
		resilience.WithSleeper(func(d time.Duration) { s.waits = append(s.waits, d) }),
		resilience.WithJitterSource(func(int64) int64 { return 0 }))
	s.store = guarded.NewReservationStore(s.inner, s.breaker, retrier)
}

func (s *GuardedStoreTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestGuardedStoreSuite(t *testing.T) {
	suite.Run(t, new(GuardedStoreTestSuite))
}

func (s *GuardedStoreTestSuite) TestTransientFailureIsRetried() {
	res := builder.NewReservationBuilder().MustBuildDomain()
	gomock.InOrder(
		s.inner.EXPECT().FindByID(gomock.Any(), res.ID()).Return(nil, errors.New("conn reset")),
		s.inner.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil),
	)

	got, err := s.store.FindByID(context.Background(), res.ID())
	s.Require().NoError(err)
	s.Equal(res.ID(), got.ID())
	s.Equal([]time.Duration{200 * time.Millisecond}, s.waits)
	s.Equal(resilience.StateClosed, s.breaker.Snapshot().State)
}

func (s *GuardedStoreTestSuite) TestDefinitiveAnswersAreNotRetried() {
	id := uuid.New()
	notFound := infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	s.inner.EXPECT().FindByID(gomock.Any(), id).Return(nil, notFound).Times(5)

	for i := 0; i < 5; i++ {
		_, err := s.store.FindByID(context.Background(), id)
		s.True(infra.IsKind(err, infra.KindNotFound))
	}
	s.Empty(s.waits)
	s.Equal(resilience.StateClosed, s.breaker.Snapshot().State)
	s.Equal(0, s.breaker.Snapshot().Failures)
}

func (s *GuardedStoreTestSuite) TestConflictAndDuplicatePassThrough() {
	res := builder.NewReservationBuilder().MustBuildDomain()
	s.inner.EXPECT().Create(gomock.Any(), res).Return(nil, infra.NewRepoErr(infra.KindDuplicateKey, "dup"))
	_, err := s.store.Create(context.Background(), res)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))

	s.inner.EXPECT().Create(gomock.Any(), res).Return(nil, infra.NewRepoErr(infra.KindConflict, "overlap"))
	_, err = s.store.Create(context.Background(), res)
	s.True(infra.IsKind(err, infra.KindConflict))

	s.inner.EXPECT().Create(gomock.Any(), res).Return(nil, infra.NewRepoErr(infra.KindDuplicateID, "id"))
	_, err = s.store.Create(context.Background(), res)
	s.True(infra.IsKind(err, infra.KindDuplicateID))
	s.Empty(s.waits)
	s.Equal(0, s.breaker.Snapshot().Failures)
}

func (s *GuardedStoreTestSuite) TestBreakerTripsMidSequence() {
	down := errors.New("connection refused")
	// Threshold 3: the fourth attempt is rejected by the open breaker.
	s.inner.EXPECT().HasOverlap(gomock.Any(), reservation.RoomKing, gomock.Any(), gomock.Any()).
		Return(false, down).Times(3)

	_, err := s.store.HasOverlap(context.Background(), reservation.RoomKing, time.Now(), time.Now().Add(24*time.Hour))
	s.ErrorIs(err, resilience.ErrBreakerOpen)
	s.Equal(resilience.StateOpen, s.breaker.Snapshot().State)
	s.Len(s.waits, 3)

	// While open, calls fail fast without touching the store.
	s.waits = nil
	_, err = s.store.FindByIdempotencyKey(context.Background(), "key-1")
	s.ErrorIs(err, resilience.ErrBreakerOpen)
}

func (s *GuardedStoreTestSuite) TestRecoveryAfterCooldown() {
	down := errors.New("connection refused")
	id := uuid.New()
	s.inner.EXPECT().FindByID(gomock.Any(), id).Return(nil, down).Times(3)
	_, _ = s.store.FindByID(context.Background(), id)
	s.Require().Equal(resilience.StateOpen, s.breaker.Snapshot().State)

	s.clock.Advance(30 * time.Second)
	res := builder.NewReservationBuilder().MustBuildDomain()
	s.inner.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil)

	got, err := s.store.FindByID(context.Background(), res.ID())
	s.Require().NoError(err)
	s.Equal(res.ID(), got.ID())
	s.Equal(resilience.StateClosed, s.breaker.Snapshot().State)
}

func (s *GuardedStoreTestSuite) TestCallerCancellationDoesNotAbortStoreCall() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := builder.NewReservationBuilder().MustBuildDomain()
	s.inner.EXPECT().Create(gomock.Any(), res).
		DoAndReturn(func(ctx context.Context, r *reservation.Reservation) (*reservation.Reservation, error) {
			s.NoError(ctx.Err())
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline, "per-call timeout applied")
			return r, nil
		})

	_, err := s.store.Create(ctx, res)
	s.NoError(err)
}
