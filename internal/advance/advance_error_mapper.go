package advance

import (
	"errors"
	"strings"

	advanceerrors "go-payroll/internal/advance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return advanceerrors.ErrAdvanceNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return advanceerrors.ErrAdvanceAlreadyPosted
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_advance_posting_slip" {
		return advanceerrors.ErrAdvanceAlreadyPosted
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique") && strings.Contains(errMsg, "salary_advance_postings") {
		return advanceerrors.ErrAdvanceAlreadyPosted
	}

	return err
}
