package timelog

import (
	"context"
	"errors"
	"strings"

	"go-timeclock/internal/shared/apperror"
	timelogerrors "go-timeclock/internal/timelog/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timelogerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return apperror.ErrStoreUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrStoreUnavailable
	}

	return err
}
