package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		assert.Equal(t, c.GetString("request_id"), contextutil.GetRequestID(ctx))
		contextutil.GetLogger(ctx, nil).Info("handled")
		c.Status(http.StatusNoContent)
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "rid-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "rid-123", w.Header().Get("X-Request-ID"))
		entries := logs.FilterMessage("handled").TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "rid-123", entries[0].ContextMap()["request_id"])
		}
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
