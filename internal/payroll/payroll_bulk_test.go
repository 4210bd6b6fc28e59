package payroll_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollService_BulkGenerate_RedisLock(t *testing.T) {
	ctx := context.Background()

	t.Run("lock held elsewhere", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		env := newEnv(t, func(d *payroll.Deps) { d.Redis = rdb })
		env.employee(t, "E1", "50000")

		key := payroll.BulkLockKey(env.companyID.String(), period)
		mock.ExpectSetNX(key, env.actorID, 15*time.Minute).SetVal(false)

		_, err := env.svc.BulkGenerate(ctx, env.companyID.String(), env.actorID, payroll.BulkGenerateRequest{SalaryPeriod: period})
		assert.ErrorIs(t, err, payrollerrors.ErrBulkRunInProgress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lock acquired and released", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		env := newEnv(t, func(d *payroll.Deps) { d.Redis = rdb })
		env.employee(t, "E1", "50000")

		key := payroll.BulkLockKey(env.companyID.String(), period)
		mock.ExpectSetNX(key, env.actorID, 15*time.Minute).SetVal(true)
		mock.ExpectDel(key).SetVal(1)

		res, err := env.svc.BulkGenerate(ctx, env.companyID.String(), env.actorID, payroll.BulkGenerateRequest{SalaryPeriod: period})
		require.NoError(t, err)
		assert.Equal(t, 1, res.GeneratedCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down falls back to slip uniqueness", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		env := newEnv(t, func(d *payroll.Deps) { d.Redis = rdb })
		env.employee(t, "E1", "50000")

		key := payroll.BulkLockKey(env.companyID.String(), period)
		mock.ExpectSetNX(key, env.actorID, 15*time.Minute).SetErr(assert.AnError)

		res, err := env.svc.BulkGenerate(ctx, env.companyID.String(), env.actorID, payroll.BulkGenerateRequest{SalaryPeriod: period})
		require.NoError(t, err)
		assert.Equal(t, 1, res.GeneratedCount)
	})
}

type cancellingDirectory struct {
	employee.Directory
	cancelOn string
	cancel   context.CancelFunc
}

func (d cancellingDirectory) FindProfile(ctx context.Context, companyID, employeeID string, asOf time.Time) (*employee.Profile, error) {
	if employeeID == d.cancelOn {
		d.cancel()
		return nil, ctx.Err()
	}
	return d.Directory.FindProfile(ctx, companyID, employeeID, asOf)
}

func TestPayrollService_BulkGenerate_CancelledRunKeepsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := &cancellingDirectory{cancel: cancel}
	env := newEnv(t, func(d *payroll.Deps) {
		dir.Directory = d.Directory
		d.Directory = dir
	})
	e1 := env.employee(t, "E1", "40000")
	e2 := env.employee(t, "E2", "45000")
	e3 := env.employee(t, "E3", "50000")
	dir.cancelOn = e2.String()

	res, err := env.svc.BulkGenerate(ctx, env.companyID.String(), env.actorID, payroll.BulkGenerateRequest{
		SalaryPeriod: period,
		EmployeeIDs:  []string{e1.String(), e2.String(), e3.String()},
	})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, period, res.SalaryPeriod)
	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 1, res.GeneratedCount)
	require.Len(t, res.SlipIDs, 1)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, e1.String(), res.Outcomes[0].EmployeeID)
	assert.Equal(t, payroll.OutcomeGenerated, res.Outcomes[0].Outcome)
	assert.Equal(t, payroll.OutcomeFailed, res.Outcomes[1].Outcome)

	var count int64
	require.NoError(t, env.db.Model(&payroll.SalarySlip{}).
		Where("company_id = ? AND salary_period = ?", env.companyID, period).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
