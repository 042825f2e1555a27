package api

import (
	"errors"
	"net/http"

	reqdto "hotel-reservation/internal/handler/dto/request"
	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	q queries.RoomSearchQueries
}

func NewRoomHandler(q queries.RoomSearchQueries) *RoomHandler {
	return &RoomHandler{q: q}
}

// @Summary Search rooms
// @Description Understand a free-text request and recommend matching room types
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body reqdto.RoomSearchRequest true "Search request"
// @Success 200 {object} resdto.RoomSearchResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /rooms/search [post]
func (h *RoomHandler) Search(c *gin.Context) {
	var req reqdto.RoomSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.q.Search(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrEmptyQuery):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Query must not be empty", nil)
		case errors.Is(err, queries.ErrIntentUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Room search assistant temporarily unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp, err := resdto.FromRoomSearchResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
