package repository

import (
	"context"
	"log/slog"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/pgsql"
	"hotel-reservation/internal/infra/repository/converter"
	"hotel-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation.go -package=repositorymock
type ReservationQueries interface {
	CreateReservation(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateReservationParams) (pgsql.ReservationRow, error)
	GetReservationByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.ReservationRow, error)
	GetReservationByIdempotencyKey(ctx context.Context, db pgsql.DBTX, key string) (pgsql.ReservationRow, error)
	ExistsOverlappingReservation(ctx context.Context, db pgsql.DBTX, roomType string, checkIn, checkOut time.Time) (bool, error)
}

type ReservationRepository struct {
	queries ReservationQueries
	db      pgsql.DBTX
	logger  *slog.Logger
}

func NewReservationRepository(queries ReservationQueries, db pgsql.DBTX, logger *slog.Logger) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	params, err := converter.ReservationToInfra(res)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode reservation", err)
	}

	row, err := r.queries.CreateReservation(ctx, r.db, params)
	if err != nil {
		switch {
		case pgconv.IsUniqueViolation(err, pgsql.ConstraintPrimaryKey):
			return nil, infra.WrapRepoErr(r.logger, infra.KindDuplicateID, "reservation id already exists", err)
		case pgconv.IsUniqueViolation(err, pgsql.ConstraintIdempotencyKey):
			return nil, infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "idempotency key already used", err)
		case pgconv.IsExclusionViolation(err, pgsql.ConstraintNoOverlap):
			return nil, infra.WrapRepoErr(r.logger, infra.KindConflict, "room type already booked for these dates", err)
		default:
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create reservation", err)
		}
	}
	return r.toDomain(row)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get reservation", err)
	}
	return r.toDomain(row)
}

func (r *ReservationRepository) FindByIdempotencyKey(ctx context.Context, key string) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByIdempotencyKey(ctx, r.db, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get reservation by idempotency key", err)
	}
	return r.toDomain(row)
}

func (r *ReservationRepository) HasOverlap(ctx context.Context, roomType reservation.RoomType, checkIn, checkOut time.Time) (bool, error) {
	exists, err := r.queries.ExistsOverlappingReservation(ctx, r.db, roomType.String(), checkIn, checkOut)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check overlapping reservations", err)
	}
	return exists, nil
}

func (r *ReservationRepository) toDomain(row pgsql.ReservationRow) (*reservation.Reservation, error) {
	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode reservation", err)
	}
	return res, nil
}
