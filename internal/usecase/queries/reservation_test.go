//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/usecase/queries"
	"hotel-reservation/tests/common/builder"
	sharedmock "hotel-reservation/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ReservationQueriesTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *sharedmock.MockReservationStore
	cache *sharedmock.MockReservationCache
	q     queries.ReservationQueries
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = sharedmock.NewMockReservationStore(s.ctrl)
	s.cache = sharedmock.NewMockReservationCache(s.ctrl)
	s.q = queries.NewReservationQueries(s.store, s.cache, discardLogger())
}

func (s *ReservationQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func (s *ReservationQueriesTestSuite) TestCacheHitSkipsStore() {
	res := builder.NewReservationBuilder().MustBuildDomain()
	s.cache.EXPECT().Get(gomock.Any(), res.ID()).Return(res, true)

	actual, err := s.q.GetByID(context.Background(), res.ID())
	s.Require().NoError(err)
	s.Same(res, actual)
}

func (s *ReservationQueriesTestSuite) TestCacheMissPopulatesCache() {
	res := builder.NewReservationBuilder().MustBuildDomain()
	gomock.InOrder(
		s.cache.EXPECT().Get(gomock.Any(), res.ID()).Return(nil, false),
		s.store.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil),
		s.cache.EXPECT().Set(gomock.Any(), res),
	)

	actual, err := s.q.GetByID(context.Background(), res.ID())
	s.Require().NoError(err)
	s.Equal(res.ID(), actual.ID())
}

func (s *ReservationQueriesTestSuite) TestNotFound() {
	id := uuid.New()
	s.cache.EXPECT().Get(gomock.Any(), id).Return(nil, false)
	s.store.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.NewRepoErr(infra.KindNotFound, "nf"))

	actual, err := s.q.GetByID(context.Background(), id)
	s.ErrorIs(err, queries.ErrReservationNotFound)
	s.Nil(actual)
}

func (s *ReservationQueriesTestSuite) TestStoreUnavailable() {
	id := uuid.New()
	down := errors.New("breaker open")
	s.cache.EXPECT().Get(gomock.Any(), id).Return(nil, false)
	s.store.EXPECT().FindByID(gomock.Any(), id).Return(nil, down)

	_, err := s.q.GetByID(context.Background(), id)
	s.ErrorIs(err, queries.ErrStoreUnavailable)
	s.ErrorIs(err, down)
}
