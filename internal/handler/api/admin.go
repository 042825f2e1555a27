package api

import (
	"log/slog"
	"net/http"

	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/resilience"

	"github.com/gin-gonic/gin"
)

var ErrUnknownBreaker = errs.New("unknown breaker")

type AdminHandler struct {
	breakers *resilience.Registry
	logger   *slog.Logger
}

func NewAdminHandler(breakers *resilience.Registry, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{breakers: breakers, logger: logger}
}

// @Summary List breakers
// @Description Current state of every dependency breaker
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.BreakerResponse
// @Router /admin/breakers [get]
func (h *AdminHandler) ListBreakers(c *gin.Context) {
	snapshots := h.breakers.Snapshots()
	resp := make([]resdto.BreakerResponse, len(snapshots))
	for i, s := range snapshots {
		resp[i] = resdto.FromBreakerSnapshot(s)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reset breaker
// @Description Force a breaker back to closed
// @Tags admin
// @Produce json
// @Param name path string true "Breaker name"
// @Success 200 {object} resdto.BreakerResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/breakers/{name}/reset [post]
func (h *AdminHandler) ResetBreaker(c *gin.Context) {
	name := c.Param("name")
	b, ok := h.breakers.Get(name)
	if !ok {
		httperr.AbortWithError(c, http.StatusNotFound, ErrUnknownBreaker, "Breaker not found", nil)
		return
	}
	b.Reset()
	h.logger.Warn("breaker reset by operator", "breaker", name, "client_ip", c.ClientIP())
	c.JSON(http.StatusOK, resdto.FromBreakerSnapshot(b.Snapshot()))
}
