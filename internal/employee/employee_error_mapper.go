package employee

import (
	"context"
	"errors"
	"strings"

	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_badge" {
			return employeeerrors.ErrDuplicateBadge
		}
		// Class 08: connection exceptions, worth one retry upstream.
		if strings.HasPrefix(pgErr.Code, "08") {
			return apperror.ErrStoreUnavailable
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrStoreUnavailable
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_badge") {
		return employeeerrors.ErrDuplicateBadge
	}

	return err
}
