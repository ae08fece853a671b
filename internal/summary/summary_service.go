package summary

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-timeclock/internal/shared/apperror"
	timelogerrors "go-timeclock/internal/timelog/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const storeTimeout = 5 * time.Second

//go:generate mockgen -source=summary_service.go -destination=mock/summary_service_mock.go -package=mock
type Service interface {
	TotalHours(ctx context.Context, badge string) (TotalHoursResponse, error)
	ResetHours(ctx context.Context, badge string) (ResetHoursResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// TotalHours re-derives the total from the ledger on every call; the
// aggregator holds no state of its own. An employee with no entries
// totals 0, an unknown badge is an error.
func (s *service) TotalHours(ctx context.Context, badge string) (TotalHoursResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	empl, err := s.repo.FindEmployeeByBadge(ctx, badge)
	if err != nil {
		return TotalHoursResponse{}, mapRepositoryError(err)
	}

	total, err := s.repo.SumHoursByEmployee(ctx, empl.ID)
	if err != nil {
		s.logger.Error("sum hours failed", zap.String("badge_number", badge), zap.Error(err))
		return TotalHoursResponse{}, mapRepositoryError(err)
	}

	return TotalHoursResponse{
		BadgeNumber: badge,
		TotalHours:  total.StringFixed(2),
	}, nil
}

func (s *service) ResetHours(ctx context.Context, badge string) (ResetHoursResponse, error) {
	s.logger.Debug("reset hours requested", zap.String("badge_number", badge))

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		// Lock the employee so a concurrent clock-out cannot land
		// between the reset and the commit.
		empl, err := qtx.FindEmployeeForUpdate(ctx, badge)
		if err != nil {
			return err
		}

		affected, err = qtx.ResetHoursByEmployee(ctx, empl.ID)
		return err
	})
	if err != nil {
		s.logger.Error("reset hours failed", zap.String("badge_number", badge), zap.Error(err))
		return ResetHoursResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("reset hours success",
		zap.String("badge_number", badge),
		zap.Int64("entries_reset", affected),
	)
	return ResetHoursResponse{
		BadgeNumber:  badge,
		EntriesReset: affected,
	}, nil
}

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
