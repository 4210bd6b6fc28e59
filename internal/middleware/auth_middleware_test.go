package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type errorEnvelope struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.GetString("user_id"),
			"employee_id": c.GetString("employee_id"),
			"company_id":  c.GetString("company_id"),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := newAuthRouter()

	valid := jwt.MapClaims{
		"user_id":     "u-1",
		"company_id":  "c-1",
		"employee_id": "e-1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantMsg    string
	}{
		{name: "bearer token", header: "Bearer " + signToken(t, valid), wantStatus: http.StatusOK},
		{name: "cookie token", cookie: signToken(t, valid), wantStatus: http.StatusOK},
		{name: "missing token", wantStatus: http.StatusUnauthorized, wantMsg: "Authentication is required"},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"user_id": "u-1", "company_id": "c-1", "exp": time.Now().Add(-time.Minute).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token expired",
		},
		{
			name:       "missing company",
			header:     "Bearer " + signToken(t, jwt.MapClaims{"user_id": "u-1"}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Company ID not found in token",
		},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantMsg != "" {
				var env errorEnvelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
				assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
				assert.Equal(t, tc.wantMsg, env.Error.Message)
			}
		})
	}
}

func TestAuthMiddleware_EmployeeOptional(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "u-1", "company_id": "c-1"}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Empty(t, body["employee_id"])
}
