package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		keepSent bool
	}{
		{name: "client id kept", header: "batch-2026-03_01", keepSent: true},
		{name: "missing id generated", header: ""},
		{name: "too long replaced", header: strings.Repeat("a", 65)},
		{name: "unsafe chars replaced", header: "abc\r\ninjected"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var fromCtx string
			r := gin.New()
			r.Use(middleware.RequestID())
			r.GET("/", func(c *gin.Context) {
				fromCtx = contextutil.GetRequestID(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(middleware.HeaderRequestID, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(middleware.HeaderRequestID)
			assert.Equal(t, got, fromCtx)
			if tc.keepSent {
				assert.Equal(t, tc.header, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
