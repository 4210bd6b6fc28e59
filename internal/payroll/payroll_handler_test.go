package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	generateFn func(ctx context.Context, companyID, actorID string, req payroll.GenerateSlipRequest) (payroll.SalarySlipResponse, error)
	bulkFn     func(ctx context.Context, companyID, actorID string, req payroll.BulkGenerateRequest) (payroll.BulkResult, error)
	markPaidFn func(ctx context.Context, companyID, actorID, id string, req payroll.MarkPaidRequest) (payroll.SalarySlipResponse, error)
	getAllFn   func(ctx context.Context, companyID string, filter payroll.GetSlipsFilterRequest) ([]payroll.SalarySlipResponse, error)
	getByIDFn  func(ctx context.Context, companyID, id string) (payroll.SalarySlipResponse, error)
	verifyFn   func(ctx context.Context, companyID, id string) (payroll.VerifyResult, error)
	payslipFn  func(ctx context.Context, companyID, id string) (payroll.Payslip, error)
	deleteFn   func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollService) Generate(ctx context.Context, companyID, actorID string, req payroll.GenerateSlipRequest) (payroll.SalarySlipResponse, error) {
	return f.generateFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) BulkGenerate(ctx context.Context, companyID, actorID string, req payroll.BulkGenerateRequest) (payroll.BulkResult, error) {
	return f.bulkFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) MarkPaid(ctx context.Context, companyID, actorID, id string, req payroll.MarkPaidRequest) (payroll.SalarySlipResponse, error) {
	return f.markPaidFn(ctx, companyID, actorID, id, req)
}

func (f *fakePayrollService) GetAll(ctx context.Context, companyID string, filter payroll.GetSlipsFilterRequest) ([]payroll.SalarySlipResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func (f *fakePayrollService) GetByID(ctx context.Context, companyID, id string) (payroll.SalarySlipResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePayrollService) Verify(ctx context.Context, companyID, id string) (payroll.VerifyResult, error) {
	return f.verifyFn(ctx, companyID, id)
}

func (f *fakePayrollService) Payslip(ctx context.Context, companyID, id string) (payroll.Payslip, error) {
	return f.payslipFn(ctx, companyID, id)
}

func (f *fakePayrollService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func newJSONContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestPayrollHandler_Generate(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayrollService{
		generateFn: func(ctx context.Context, cid, aid string, req payroll.GenerateSlipRequest) (payroll.SalarySlipResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, employeeID, req.EmployeeID)
			assert.Equal(t, "2026-03", req.SalaryPeriod)
			return payroll.SalarySlipResponse{ID: uuid.New().String(), Status: payroll.StatusGenerated, NetPayable: decimal.NewFromInt(53000)}, nil
		},
	}

	c, w := newJSONContext(http.MethodPost, "/salary-slips", `{"employee_id":"`+employeeID+`","salary_period":"2026-03"}`)
	c.Set("company_id", companyID)
	c.Set("employee_id", actorID)

	payroll.NewHandler(svc).Generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var slip payroll.SalarySlipResponse
	assert.NoError(t, json.Unmarshal(env.Data, &slip))
	assert.Equal(t, "53000", slip.NetPayable.String())
}

func TestPayrollHandler_Generate_Duplicate(t *testing.T) {
	svc := &fakePayrollService{
		generateFn: func(ctx context.Context, companyID, actorID string, req payroll.GenerateSlipRequest) (payroll.SalarySlipResponse, error) {
			return payroll.SalarySlipResponse{}, payrollerrors.ErrDuplicateSlip
		},
	}

	c, w := newJSONContext(http.MethodPost, "/salary-slips", `{"employee_id":"`+uuid.New().String()+`","salary_period":"2026-03"}`)
	c.Set("company_id", uuid.New().String())

	payroll.NewHandler(svc).Generate(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "DUPLICATE", env.Error.Code)
}

func TestPayrollHandler_Generate_BindError(t *testing.T) {
	svc := &fakePayrollService{}

	c, w := newJSONContext(http.MethodPost, "/salary-slips", `{"employee_id":"not-a-uuid"}`)
	c.Set("company_id", uuid.New().String())

	payroll.NewHandler(svc).Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestPayrollHandler_BulkGenerate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     payroll.BulkResult
		err        error
		wantStatus int
	}{
		{
			name:       "synchronous run",
			body:       `{"salary_period":"2026-03"}`,
			result:     payroll.BulkResult{SalaryPeriod: "2026-03", GeneratedCount: 2},
			wantStatus: http.StatusOK,
		},
		{
			name:       "queued run",
			body:       `{"salary_period":"2026-03","async":true}`,
			result:     payroll.BulkResult{SalaryPeriod: "2026-03", Queued: true, RequestID: "r-1"},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "run in progress",
			body:       `{"salary_period":"2026-03"}`,
			err:        payrollerrors.ErrBulkRunInProgress,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakePayrollService{
				bulkFn: func(ctx context.Context, companyID, actorID string, req payroll.BulkGenerateRequest) (payroll.BulkResult, error) {
					return tc.result, tc.err
				},
			}

			c, w := newJSONContext(http.MethodPost, "/salary-slips/bulk", tc.body)
			c.Set("company_id", uuid.New().String())
			c.Set("employee_id", uuid.New().String())

			payroll.NewHandler(svc).BulkGenerate(c)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestPayrollHandler_GetAll_Paginates(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, companyID string, filter payroll.GetSlipsFilterRequest) ([]payroll.SalarySlipResponse, error) {
			assert.Equal(t, "2026-03", filter.SalaryPeriod)
			out := make([]payroll.SalarySlipResponse, 5)
			for i := range out {
				out[i] = payroll.SalarySlipResponse{ID: uuid.NewString()}
			}
			return out, nil
		},
	}

	c, w := newJSONContext(http.MethodGet, "/salary-slips?salary_period=2026-03&page=2&page_size=2", "")
	c.Set("company_id", uuid.New().String())

	payroll.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var page []payroll.SalarySlipResponse
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 2)
}

func TestPayrollHandler_MarkPaid(t *testing.T) {
	id := uuid.New().String()

	t.Run("already paid", func(t *testing.T) {
		svc := &fakePayrollService{
			markPaidFn: func(ctx context.Context, companyID, actorID, slipID string, req payroll.MarkPaidRequest) (payroll.SalarySlipResponse, error) {
				assert.Equal(t, id, slipID)
				assert.Equal(t, "BANK_TRANSFER", req.PaymentMethod)
				return payroll.SalarySlipResponse{}, payrollerrors.ErrSlipAlreadyPaid
			},
		}

		c, w := newJSONContext(http.MethodPost, "/salary-slips/"+id+"/mark-paid", `{"payment_method":"BANK_TRANSFER"}`)
		c.Params = []gin.Param{{Key: "id", Value: id}}
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		payroll.NewHandler(svc).MarkPaid(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("payment method missing", func(t *testing.T) {
		c, w := newJSONContext(http.MethodPost, "/salary-slips/"+id+"/mark-paid", `{}`)
		c.Params = []gin.Param{{Key: "id", Value: id}}

		payroll.NewHandler(&fakePayrollService{}).MarkPaid(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	svc := &fakePayrollService{
		payslipFn: func(ctx context.Context, companyID, id string) (payroll.Payslip, error) {
			return payroll.Payslip{FileName: "SLP-20260328-0001.pdf", Content: []byte("%PDF-1.4")}, nil
		},
	}

	c, w := newJSONContext(http.MethodGet, "/salary-slips/x/payslip", "")
	c.Params = []gin.Param{{Key: "id", Value: "x"}}
	c.Set("company_id", uuid.New().String())

	payroll.NewHandler(svc).DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "SLP-20260328-0001.pdf")
}

func TestPayrollHandler_Delete_Paid(t *testing.T) {
	svc := &fakePayrollService{
		deleteFn: func(ctx context.Context, companyID, id string) error {
			return payrollerrors.ErrDeletePaidSlip
		},
	}

	c, w := newJSONContext(http.MethodDelete, "/salary-slips/x", "")
	c.Params = []gin.Param{{Key: "id", Value: "x"}}
	c.Set("company_id", uuid.New().String())

	payroll.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
