// Package pgsql holds the SQL and row types for the reservations table.
package pgsql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	ConstraintPrimaryKey     = "reservations_pkey"
	ConstraintIdempotencyKey = "reservations_idempotency_key_idx"
	ConstraintNoOverlap      = "reservations_no_overlap"
)

type ReservationRow struct {
	ID               uuid.UUID
	RoomType         string
	CheckIn          pgtype.Timestamptz
	CheckOut         pgtype.Timestamptz
	NumGuests        int32
	IncludeBreakfast bool
	TotalPriceCents  int64
	PricingBreakdown []byte
	IdempotencyKey   pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type CreateReservationParams struct {
	ID               uuid.UUID
	RoomType         string
	CheckIn          pgtype.Timestamptz
	CheckOut         pgtype.Timestamptz
	NumGuests        int32
	IncludeBreakfast bool
	TotalPriceCents  int64
	PricingBreakdown []byte
	IdempotencyKey   pgtype.Text
	CreatedAt        pgtype.Timestamptz
}

const reservationColumns = `id, room_type, check_in, check_out, num_guests, include_breakfast,
	total_price_cents, pricing_breakdown, idempotency_key, created_at, updated_at`

const createReservation = `INSERT INTO reservations (
	id, room_type, check_in, check_out, num_guests, include_breakfast,
	total_price_cents, pricing_breakdown, idempotency_key, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING ` + reservationColumns

const getReservationByID = `SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1`

const getReservationByIdempotencyKey = `SELECT ` + reservationColumns + `
FROM reservations
WHERE idempotency_key = $1`

// Half-open ranges: a stay ending on a day does not overlap one starting that day.
const existsOverlappingReservation = `SELECT EXISTS (
	SELECT 1 FROM reservations
	WHERE room_type = $1
	  AND check_in < $3
	  AND check_out > $2
)`

// Queries is the hand-written query layer; each method takes the executor so
// callers can run it on the pool or inside a transaction.
type Queries struct{}

func NewQueries() *Queries {
	return &Queries{}
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (ReservationRow, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.RoomType,
		arg.CheckIn,
		arg.CheckOut,
		arg.NumGuests,
		arg.IncludeBreakfast,
		arg.TotalPriceCents,
		arg.PricingBreakdown,
		arg.IdempotencyKey,
		arg.CreatedAt,
	)
	return scanReservation(row)
}

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (ReservationRow, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

func (q *Queries) GetReservationByIdempotencyKey(ctx context.Context, db DBTX, key string) (ReservationRow, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByIdempotencyKey, key))
}

func (q *Queries) ExistsOverlappingReservation(ctx context.Context, db DBTX, roomType string, checkIn, checkOut time.Time) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, existsOverlappingReservation, roomType, checkIn, checkOut).Scan(&exists)
	return exists, err
}

func scanReservation(row pgx.Row) (ReservationRow, error) {
	var r ReservationRow
	err := row.Scan(
		&r.ID,
		&r.RoomType,
		&r.CheckIn,
		&r.CheckOut,
		&r.NumGuests,
		&r.IncludeBreakfast,
		&r.TotalPriceCents,
		&r.PricingBreakdown,
		&r.IdempotencyKey,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
