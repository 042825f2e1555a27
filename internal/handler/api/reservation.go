package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	reqdto "hotel-reservation/internal/handler/dto/request"
	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/pkg/resilience"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type ReservationHandler struct {
	cmds     commands.ReservationCommands
	q        queries.ReservationQueries
	breakers *resilience.Registry
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	q queries.ReservationQueries,
	breakers *resilience.Registry,
) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, breakers: breakers}
}

// @Summary Create reservation
// @Description Price and book a room type for a date range. Replaying an Idempotency-Key returns the original reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client token deduplicating retried submissions"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), cmd)
	if err != nil {
		h.abortCreate(c, err)
		return
	}

	status := http.StatusCreated
	if result.Outcome == commands.OutcomeAlreadyExists {
		status = http.StatusOK
	} else {
		c.Header("Location", "/api/reservations/"+result.Reservation.ID().String())
	}
	c.JSON(status, resdto.FromReservation(result.Reservation))
}

func (h *ReservationHandler) abortCreate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrValidationFailed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Reservation validation failed", nil)
	case errors.Is(err, commands.ErrReservationConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room type already booked for the requested dates", nil)
	case errors.Is(err, commands.ErrPersistenceUnavailable):
		httperr.AbortUnavailable(c, err, "Reservation storage temporarily unavailable", h.retryAfterSeconds())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// retryAfterSeconds points clients at the end of the storage breaker's
// cooldown when it is open, and otherwise asks for a short pause.
func (h *ReservationHandler) retryAfterSeconds() int {
	if h.breakers == nil {
		return 1
	}
	b, ok := h.breakers.Get(resilience.BreakerPostgres)
	if !ok {
		return 1
	}
	snap := b.Snapshot()
	if snap.State != resilience.StateOpen {
		return 1
	}
	wait := time.Until(snap.NextAttemptAt)
	return max(1, int(math.Ceil(wait.Seconds())))
}

// @Summary Get reservation
// @Description Get a reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	res, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, queries.ErrStoreUnavailable):
			httperr.AbortUnavailable(c, err, "Reservation storage temporarily unavailable", h.retryAfterSeconds())
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}
