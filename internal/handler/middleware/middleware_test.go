//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCorrelation(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.Correlation())
	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = correlation.FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("echoes the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(correlation.Header, "abc-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(correlation.Header))
	})

	t.Run("mints an id when absent or oversized", func(t *testing.T) {
		for _, header := range []string{"", strings.Repeat("x", 200)} {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if header != "" {
				req.Header.Set(correlation.Header, header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Len(t, seen, 36)
			assert.Equal(t, seen, w.Header().Get(correlation.Header))
		}
	})
}

type httpRecord struct {
	method string
	route  string
	status int
}

type fakeHTTPRecorder struct {
	records []httpRecord
}

func (f *fakeHTTPRecorder) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.records = append(f.records, httpRecord{method: method, route: route, status: status})
}

func TestHTTPMetrics(t *testing.T) {
	rec := &fakeHTTPRecorder{}
	engine := gin.New()
	engine.Use(middleware.HTTPMetrics(rec))
	engine.GET("/api/reservations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/reservations/1", "/api/reservations/2", "/nowhere"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, rec.records, 3)
	assert.Equal(t, httpRecord{http.MethodGet, "/api/reservations/:id", http.StatusOK}, rec.records[0])
	assert.Equal(t, "/api/reservations/:id", rec.records[1].route)
	assert.Equal(t, httpRecord{http.MethodGet, "", http.StatusNotFound}, rec.records[2])
}

func TestErrorHandler(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	engine.GET("/public", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusConflict, errs.New("taken"), "Room already booked", nil)
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	engine.GET("/private", func(c *gin.Context) {
		_ = c.Error(errs.New("driver exploded"))
	})
	engine.GET("/unavailable", func(c *gin.Context) {
		httperr.AbortUnavailable(c, errs.New("breaker open"), "Storage temporarily unavailable", 0)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Room already booked"}}`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unavailable", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
