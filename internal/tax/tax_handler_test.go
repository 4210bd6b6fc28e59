package tax_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/tax"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTaxRouter(t *testing.T, companyID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	h := tax.NewHandler(tax.NewService(sqlDB, tax.NewRepository(db)))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	})
	r.POST("/tax/slabs", h.CreateSlab)
	r.GET("/tax/slabs", h.GetSlabs)
	r.GET("/tax/minimum-limit", h.GetMinimumLimit)
	r.PUT("/tax/minimum-limit", h.SetMinimumLimit)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTaxHandler_Slabs(t *testing.T) {
	r := newTaxRouter(t, uuid.NewString())

	w := doJSON(r, http.MethodPost, "/tax/slabs", `{"income_from":"0","income_to":"40000","fixed_amount":"0","percentage":"5"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/tax/slabs", `{"income_from":"0","fixed_amount":"0","percentage":"120"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)

	w = doJSON(r, http.MethodGet, "/tax/slabs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var slabs []tax.SlabResponse
	require.NoError(t, json.Unmarshal(env.Data, &slabs))
	assert.Len(t, slabs, 1)
}

func TestTaxHandler_MinimumLimit(t *testing.T) {
	r := newTaxRouter(t, uuid.NewString())

	w := doJSON(r, http.MethodGet, "/tax/minimum-limit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/tax/minimum-limit", `{"threshold":"25000"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/tax/minimum-limit", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
