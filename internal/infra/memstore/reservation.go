// Package memstore is an in-process ReservationStore for local runs and tests.
package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"

	"github.com/google/uuid"
)

// ReservationStore checks key uniqueness and overlap under the same lock as the
// insert, so concurrent creates never persist overlapping stays.
type ReservationStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*reservation.Reservation
	byKey  map[string]uuid.UUID
	logger *slog.Logger
}

func NewReservationStore(logger *slog.Logger) *ReservationStore {
	return &ReservationStore{
		byID:   make(map[uuid.UUID]*reservation.Reservation),
		byKey:  make(map[string]uuid.UUID),
		logger: logger,
	}
}

func (s *ReservationStore) Create(_ context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[res.ID()]; exists {
		return nil, infra.NewRepoErr(infra.KindDuplicateID, "reservation id already exists")
	}
	if key := res.IdempotencyKeyValue(); key != nil {
		if _, exists := s.byKey[*key]; exists {
			return nil, infra.NewRepoErr(infra.KindDuplicateKey, "idempotency key already used")
		}
	}
	for _, existing := range s.byID {
		if existing.ConflictsWith(res.RoomType(), res.Period()) {
			return nil, infra.NewRepoErr(infra.KindConflict, "room type already booked for these dates")
		}
	}

	s.byID[res.ID()] = res
	if key := res.IdempotencyKeyValue(); key != nil {
		s.byKey[*key] = res.ID()
	}
	s.logger.Debug("reservation stored", "reservation_id", res.ID(), "store", "memory")
	return res, nil
}

func (s *ReservationStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return res, nil
}

func (s *ReservationStore) FindByIdempotencyKey(_ context.Context, key string) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byKey[key]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return s.byID[id], nil
}

func (s *ReservationStore) HasOverlap(_ context.Context, roomType reservation.RoomType, checkIn, checkOut time.Time) (bool, error) {
	period, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.byID {
		if existing.ConflictsWith(roomType, period) {
			return true, nil
		}
	}
	return false, nil
}

// Len is used by tests to assert that nothing extra was persisted.
func (s *ReservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
