package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func runRBAC(t *testing.T, svc middleware.RBACService, setup func(c *gin.Context)) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/salary-slips/:id/mark-paid", func(c *gin.Context) {
		setup(c)
		c.Next()
	}, middleware.RBACAuthorize(svc, "salary_slip", "pay"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/salary-slips/x/mark-paid", nil))
	return w.Code
}

func TestRBACAuthorize(t *testing.T) {
	withEmployee := func(c *gin.Context) {
		c.Set("employee_id", "e-1")
		c.Set("company_id", "c-1")
	}

	t.Run("allowed", func(t *testing.T) {
		svc := fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) {
			assert.Equal(t, domain.EnforceRequest{EmployeeID: "e-1", CompanyID: "c-1", Resource: "salary_slip", Action: "pay"}, req)
			return true, nil
		}}
		assert.Equal(t, http.StatusNoContent, runRBAC(t, svc, withEmployee))
	})

	t.Run("falls back to user id", func(t *testing.T) {
		svc := fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) {
			assert.Equal(t, "u-1", req.EmployeeID)
			return true, nil
		}}
		code := runRBAC(t, svc, func(c *gin.Context) {
			c.Set("user_id", "u-1")
			c.Set("company_id", "c-1")
		})
		assert.Equal(t, http.StatusNoContent, code)
	})

	t.Run("denied", func(t *testing.T) {
		svc := fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) { return false, nil }}
		assert.Equal(t, http.StatusForbidden, runRBAC(t, svc, withEmployee))
	})

	t.Run("enforcer error", func(t *testing.T) {
		svc := fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) { return false, errors.New("db down") }}
		assert.Equal(t, http.StatusInternalServerError, runRBAC(t, svc, withEmployee))
	})

	t.Run("missing auth context", func(t *testing.T) {
		svc := fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) {
			t.Fatal("enforcer must not be called")
			return false, nil
		}}
		assert.Equal(t, http.StatusUnauthorized, runRBAC(t, svc, func(c *gin.Context) {}))
	})
}
