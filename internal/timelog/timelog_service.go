package timelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/shared/contextutil"
	timelogerrors "go-timeclock/internal/timelog/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const storeTimeout = 5 * time.Second

//go:generate mockgen -source=timelog_service.go -destination=mock/timelog_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, badge string) (TimeLogResponse, error)
	ClockOut(ctx context.Context, badge string) (TimeLogResponse, error)
	GetByBadge(ctx context.Context, badge string) ([]TimeLogResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the ledger. loc is the fixed civil zone used for
// every elapsed-time computation, independent of the host locale. A
// nil outbox disables notifications entirely.
func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, loc *time.Location, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, outbox, loc, nil, logger...)
}

// NewServiceWithClock lets tests substitute a deterministic clock.
func NewServiceWithClock(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timelog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = func() time.Time { return time.Now().In(loc) }
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		loc:    loc,
		now:    now,
		logger: l,
	}
}

func (s *service) ClockIn(ctx context.Context, badge string) (TimeLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock in requested",
		zap.String("request_id", rid),
		zap.String("badge_number", badge),
	)

	// One instant per request; everything below uses it.
	now := s.now()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var row *TimeLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindEmployeeForUpdate(ctx, badge)
		if err != nil {
			return err
		}

		open, err := qtx.FindOpenByEmployee(ctx, empl.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && open != nil {
			// A second clock-in while a log is open is rejected rather
			// than stacking open entries.
			return timelogerrors.ErrAlreadyClockedIn
		}

		row = &TimeLog{
			ID:         uuid.New(),
			EmployeeID: empl.ID,
			ClockIn:    now,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return err
		}

		s.stageClockEvent(ctx, tx, rid, empl, events.ClockInEventType,
			fmt.Sprintf("Employee %s clocked in at %s.", badge, now.In(s.loc).Format("15:04:05")), now)
		return nil
	})
	if err != nil {
		if errors.Is(err, timelogerrors.ErrAlreadyClockedIn) {
			s.logger.Warn("clock in rejected, already open",
				zap.String("request_id", rid),
				zap.String("badge_number", badge),
			)
			return TimeLogResponse{}, err
		}
		s.logger.Error("clock in failed", zap.String("request_id", rid), zap.Error(err))
		return TimeLogResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("badge_number", badge),
		zap.String("time_log_id", row.ID.String()),
	)
	return s.mapToResponse(*row, badge), nil
}

func (s *service) ClockOut(ctx context.Context, badge string) (TimeLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock out requested",
		zap.String("request_id", rid),
		zap.String("badge_number", badge),
	)

	now := s.now()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var row *TimeLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindEmployeeForUpdate(ctx, badge)
		if err != nil {
			return err
		}

		open, err := qtx.FindOpenByEmployee(ctx, empl.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return timelogerrors.ErrNoOpenEntry
			}
			return err
		}

		hours := elapsedHours(open.ClockIn, now)
		clockOut := now
		open.ClockOut = &clockOut
		open.HoursWorked = &hours

		if err := qtx.Update(ctx, open); err != nil {
			return err
		}
		row = open

		s.stageClockEvent(ctx, tx, rid, empl, events.ClockOutEventType,
			fmt.Sprintf("Employee %s clocked out at %s (%s hours).",
				badge, now.In(s.loc).Format("15:04:05"), hours.StringFixed(2)), now)
		return nil
	})
	if err != nil {
		if errors.Is(err, timelogerrors.ErrNoOpenEntry) {
			s.logger.Warn("clock out rejected, nothing open",
				zap.String("request_id", rid),
				zap.String("badge_number", badge),
			)
			return TimeLogResponse{}, err
		}
		s.logger.Error("clock out failed", zap.String("request_id", rid), zap.Error(err))
		return TimeLogResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("clock out success",
		zap.String("request_id", rid),
		zap.String("badge_number", badge),
		zap.String("hours_worked", row.HoursWorked.StringFixed(2)),
	)
	return s.mapToResponse(*row, badge), nil
}

func (s *service) GetByBadge(ctx context.Context, badge string) ([]TimeLogResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	empl, err := s.repo.FindEmployeeByBadge(ctx, badge)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	rows, err := s.repo.FindAllByEmployee(ctx, empl.ID)
	if err != nil {
		s.logger.Error("get time logs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]TimeLogResponse, len(rows))
	for i, r := range rows {
		res[i] = s.mapToResponse(r, badge)
	}
	return res, nil
}

// elapsedHours converts the span to hours rounded to 2 decimal places,
// half away from zero (0.005 rounds to 0.01).
func elapsedHours(from, to time.Time) decimal.Decimal {
	return decimal.NewFromFloat(to.Sub(from).Hours()).Round(2)
}

// stageClockEvent queues the notification inside the ledger
// transaction. Failures are logged and swallowed: a notification must
// never roll back or block a clock transition.
func (s *service) stageClockEvent(
	ctx context.Context,
	tx *gorm.DB,
	rid string,
	empl *EmployeeRef,
	eventType, message string,
	occurredAt time.Time,
) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(events.ClockEvent{
		EventType:   eventType,
		RequestID:   rid,
		EmployeeID:  empl.ID.String(),
		BadgeNumber: empl.BadgeNumber,
		Message:     message,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		s.logger.Error("marshal clock event failed", zap.String("request_id", rid), zap.Error(err))
		return
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "time_log",
		AggregateID:   empl.ID.String(),
		EventType:     eventType,
		Topic:         events.ClockTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("stage clock event failed",
			zap.String("request_id", rid),
			zap.String("badge_number", empl.BadgeNumber),
			zap.Error(err),
		)
	}
}

func (s *service) mapToResponse(row TimeLog, badge string) TimeLogResponse {
	resp := TimeLogResponse{
		ID:          row.ID.String(),
		BadgeNumber: badge,
		ClockIn:     row.ClockIn.In(s.loc).Format(time.RFC3339),
	}
	if row.ClockOut != nil {
		v := row.ClockOut.In(s.loc).Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if row.HoursWorked != nil {
		v := row.HoursWorked.StringFixed(2)
		resp.HoursWorked = &v
	}
	return resp
}
