package commands

import (
	"context"
	"log/slog"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"
)

var (
	ErrValidationFailed        = errs.New("reservation validation failed")
	ErrReservationConflict     = errs.New("room type already booked for the requested dates")
	ErrPersistenceUnavailable  = errs.New("reservation storage unavailable")
	ErrInconsistentIdempotency = errs.New("store reported a duplicate but no reservation holds it")
)

type Outcome string

const (
	OutcomeCreated                Outcome = "created"
	OutcomeAlreadyExists          Outcome = "already_exists"
	OutcomeConflict               Outcome = "conflict"
	OutcomeValidationFailed       Outcome = "validation_failed"
	OutcomePersistenceUnavailable Outcome = "persistence_unavailable"
	OutcomeInconsistent           Outcome = "inconsistent"
)

type CreateReservationCommand struct {
	RoomType         string
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	IncludeBreakfast bool
	IdempotencyKey   string // empty when the client sent none
}

// CreateReservationResult always carries the outcome; Reservation is set for
// Created and AlreadyExists only.
type CreateReservationResult struct {
	Reservation *reservation.Reservation
	Outcome     Outcome
}

type MetricsRecorder interface {
	ObserveCommit(outcome string)
}

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock
type ReservationCommands interface {
	CreateReservation(ctx context.Context, cmd CreateReservationCommand) (*CreateReservationResult, error)
}

type reservationUseCaseImpl struct {
	store              shared.ReservationStore
	cache              shared.ReservationCache
	events             shared.EventPublisher
	reservationFactory *reservation.Factory
	metrics            MetricsRecorder
	clock              clock.Clock
	logger             *slog.Logger
}

func NewReservationUseCase(
	store shared.ReservationStore,
	cache shared.ReservationCache,
	events shared.EventPublisher,
	reservationFactory *reservation.Factory,
	metrics MetricsRecorder,
	clock clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationUseCaseImpl{
		store:              store,
		cache:              cache,
		events:             events,
		reservationFactory: reservationFactory,
		metrics:            metrics,
		clock:              clock,
		logger:             logger,
	}
}

func (r *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	cmd CreateReservationCommand,
) (*CreateReservationResult, error) {
	result, err := r.commit(ctx, cmd)
	r.metrics.ObserveCommit(string(result.Outcome))

	logger := correlation.Logger(ctx, r.logger)
	switch result.Outcome {
	case OutcomeCreated, OutcomeAlreadyExists:
		logger.Info("reservation commit finished",
			"outcome", result.Outcome,
			"reservation_id", result.Reservation.ID())
	case OutcomePersistenceUnavailable, OutcomeInconsistent:
		logger.Error("reservation commit failed",
			"outcome", result.Outcome,
			"error", err)
	default:
		logger.Info("reservation commit rejected",
			"outcome", result.Outcome,
			"error", err)
	}
	return result, err
}

func (r *reservationUseCaseImpl) commit(
	ctx context.Context,
	cmd CreateReservationCommand,
) (*CreateReservationResult, error) {
	var key *reservation.IdempotencyKey
	if cmd.IdempotencyKey != "" {
		k, err := reservation.NewIdempotencyKey(cmd.IdempotencyKey)
		if err != nil {
			return outcome(OutcomeValidationFailed), errs.Mark(err, ErrValidationFailed)
		}
		key = &k

		existing, err := r.findByIdempotencyKey(ctx, k.String())
		if err != nil {
			return outcome(OutcomePersistenceUnavailable), errs.Mark(err, ErrPersistenceUnavailable)
		}
		if existing != nil {
			return &CreateReservationResult{Reservation: existing, Outcome: OutcomeAlreadyExists}, nil
		}
	}

	stay, err := toStay(cmd)
	if err != nil {
		return outcome(OutcomeValidationFailed), errs.Mark(err, ErrValidationFailed)
	}

	overlapping, err := r.store.HasOverlap(ctx, stay.RoomType, stay.Period.CheckIn(), stay.Period.CheckOut())
	if err != nil {
		return outcome(OutcomePersistenceUnavailable), errs.Mark(err, ErrPersistenceUnavailable)
	}
	if overlapping {
		return r.replayOrConflict(ctx, key, ErrReservationConflict)
	}

	entity, err := r.reservationFactory.CreateReservation(stay, key)
	if err != nil {
		return outcome(OutcomeValidationFailed), errs.Mark(err, ErrValidationFailed)
	}

	created, err := r.store.Create(ctx, entity)
	if err != nil {
		return r.reconcileCreateError(ctx, entity, key, err)
	}
	return r.finishCreated(ctx, created), nil
}

func (r *reservationUseCaseImpl) finishCreated(ctx context.Context, created *reservation.Reservation) *CreateReservationResult {
	r.cache.Invalidate(ctx, created.ID())
	r.publishCreated(ctx, created)
	return &CreateReservationResult{Reservation: created, Outcome: OutcomeCreated}
}

// reconcileCreateError settles a failed insert. A resend of our own row whose
// first ack was lost surfaces as a duplicate or an overlap, so the entity id is
// checked before anything else. After that, a duplicate key means a concurrent
// request with the same key committed between our lookup and our insert.
func (r *reservationUseCaseImpl) reconcileCreateError(
	ctx context.Context,
	entity *reservation.Reservation,
	key *reservation.IdempotencyKey,
	createErr error,
) (*CreateReservationResult, error) {
	if !infra.IsDefinitive(createErr) {
		return outcome(OutcomePersistenceUnavailable), errs.Mark(createErr, ErrPersistenceUnavailable)
	}

	persisted, err := r.store.FindByID(ctx, entity.ID())
	switch {
	case err == nil:
		return r.finishCreated(ctx, persisted), nil
	case !infra.IsKind(err, infra.KindNotFound):
		return outcome(OutcomePersistenceUnavailable), errs.Mark(err, ErrPersistenceUnavailable)
	}

	switch {
	case infra.IsKind(createErr, infra.KindDuplicateKey):
		if key == nil {
			return outcome(OutcomeInconsistent), errs.Mark(createErr, ErrInconsistentIdempotency)
		}
		winner, err := r.findByIdempotencyKey(ctx, key.String())
		if err != nil {
			return outcome(OutcomePersistenceUnavailable), errs.Mark(err, ErrPersistenceUnavailable)
		}
		if winner == nil {
			return outcome(OutcomeInconsistent), errs.Mark(createErr, ErrInconsistentIdempotency)
		}
		return &CreateReservationResult{Reservation: winner, Outcome: OutcomeAlreadyExists}, nil

	case infra.IsKind(createErr, infra.KindConflict):
		return r.replayOrConflict(ctx, key, errs.Mark(createErr, ErrReservationConflict))

	default:
		// duplicate id with no row behind it
		return outcome(OutcomeInconsistent), errs.Mark(createErr, ErrInconsistentIdempotency)
	}
}

// replayOrConflict covers a same-key request that committed first: its stay
// overlaps ours, so the overlap must be reported as a replay, not a conflict.
func (r *reservationUseCaseImpl) replayOrConflict(
	ctx context.Context,
	key *reservation.IdempotencyKey,
	conflictErr error,
) (*CreateReservationResult, error) {
	if key != nil {
		winner, err := r.findByIdempotencyKey(ctx, key.String())
		if err != nil {
			return outcome(OutcomePersistenceUnavailable), errs.Mark(err, ErrPersistenceUnavailable)
		}
		if winner != nil {
			return &CreateReservationResult{Reservation: winner, Outcome: OutcomeAlreadyExists}, nil
		}
	}
	return outcome(OutcomeConflict), conflictErr
}

// findByIdempotencyKey returns (nil, nil) when no reservation holds the key.
func (r *reservationUseCaseImpl) findByIdempotencyKey(ctx context.Context, key string) (*reservation.Reservation, error) {
	res, err := r.store.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationUseCaseImpl) publishCreated(ctx context.Context, res *reservation.Reservation) {
	event := shared.ReservationCreatedEvent{
		ReservationID:   res.ID(),
		RoomType:        res.RoomType().String(),
		CheckIn:         res.CheckIn(),
		CheckOut:        res.CheckOut(),
		NumGuests:       res.Guests(),
		TotalPriceCents: res.Price().Cents(),
		IdempotencyKey:  res.IdempotencyKeyValue(),
		CorrelationID:   correlation.FromContext(ctx),
		OccurredAt:      r.clock.Now().UTC(),
	}
	if err := r.events.PublishReservationCreated(ctx, event); err != nil {
		correlation.Logger(ctx, r.logger).Warn("failed to publish reservation event",
			"reservation_id", res.ID(),
			"error", err)
	}
}

func toStay(cmd CreateReservationCommand) (reservation.Stay, error) {
	roomType, err := reservation.ParseRoomType(cmd.RoomType)
	if err != nil {
		return reservation.Stay{}, err
	}
	period, err := reservation.NewStayPeriod(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return reservation.Stay{}, err
	}
	return reservation.Stay{
		RoomType:         roomType,
		Period:           period,
		Guests:           cmd.Guests,
		IncludeBreakfast: cmd.IncludeBreakfast,
	}, nil
}

func outcome(o Outcome) *CreateReservationResult {
	return &CreateReservationResult{Outcome: o}
}
