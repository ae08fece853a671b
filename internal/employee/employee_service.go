package employee

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DirectoryCacheKey = "employees:directory"
	directoryCacheTTL = time.Hour
	storeTimeout      = 5 * time.Second
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetPage(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error)
	GetDirectory(ctx context.Context) ([]DirectoryEntryResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	PurgeByBadgePrefix(ctx context.Context, prefix string) (int64, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	rdb          *redis.Client
	sf           *singleflight.Group
	numericBadge bool
	logger       *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, numericBadge bool, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		numericBadge: numericBadge,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("badge_number", req.BadgeNumber),
	)

	if violations := ValidateEmployeeFields(req.BadgeNumber, req.Name, req.Phone, req.HourlyRate, s.numericBadge); len(violations) > 0 {
		s.logger.Warn("create employee validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(violations)),
		)
		return EmployeeResponse{}, employeeerrors.ErrValidationFailed.WithDetails(violations)
	}

	rate, _ := decimal.NewFromString(req.HourlyRate)
	empl := &Employee{
		ID:          uuid.New(),
		BadgeNumber: req.BadgeNumber,
		Name:        req.Name,
		Phone:       req.Phone,
		HourlyRate:  rate,
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	// No duplicate pre-check: the uq_employee_badge constraint is the
	// authority, so a concurrent create with the same badge loses with
	// a 23505 regardless of interleaving.
	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectoryCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("badge_number", empl.BadgeNumber),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetPage(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("get employee page requested", zap.Int("page", page), zap.Int("page_size", pageSize))

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	rows, err := s.repo.FindPageWithHours(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("get employee page failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row.Employee)
		res[i].TotalHours = row.TotalHours.StringFixed(2)
	}
	return res, total, nil
}

func (s *service) GetDirectory(ctx context.Context) ([]DirectoryEntryResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DirectoryCacheKey).Result(); err == nil {
			var resp []DirectoryEntryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent rebuilds after an invalidation.
	v, err, _ := s.sf.Do(DirectoryCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindDirectory(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]DirectoryEntryResponse, len(empls))
		for i, e := range empls {
			resp[i] = DirectoryEntryResponse{
				ID:          e.ID.String(),
				BadgeNumber: e.BadgeNumber,
				Name:        e.Name,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DirectoryCacheKey, jsonData, directoryCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]DirectoryEntryResponse), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	if violations := ValidateEmployeeFields(req.BadgeNumber, req.Name, req.Phone, req.HourlyRate, s.numericBadge); len(violations) > 0 {
		s.logger.Warn("update employee validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(violations)),
		)
		return EmployeeResponse{}, employeeerrors.ErrValidationFailed.WithDetails(violations)
	}

	rate, _ := decimal.NewFromString(req.HourlyRate)

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var empl *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		found, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Saving the row with its own unchanged badge is fine; only a
		// collision with a different row trips the constraint.
		found.BadgeNumber = req.BadgeNumber
		found.Name = req.Name
		found.Phone = req.Phone
		found.HourlyRate = rate

		if err := qtx.Update(ctx, found); err != nil {
			return err
		}
		empl = found
		return nil
	})
	if err != nil {
		s.logger.Error("update employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectoryCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		// Logs go first; the FK cascade would catch them anyway, the
		// explicit delete keeps the ordering visible and idempotent.
		if err := qtx.DeleteTimeLogs(ctx, id); err != nil {
			return err
		}

		affected, err := qtx.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return employeeerrors.ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateDirectoryCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// PurgeByBadgePrefix removes every employee whose badge starts with the
// prefix, along with all their time logs. Used to clear seeded test
// records (badge prefix "EMP" by convention).
func (s *service) PurgeByBadgePrefix(ctx context.Context, prefix string) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("purge employees requested",
		zap.String("request_id", rid),
		zap.String("badge_prefix", prefix),
	)

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		ids, err := qtx.FindIDsByBadgePrefix(ctx, prefix)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		for _, id := range ids {
			if err := qtx.DeleteTimeLogs(ctx, id); err != nil {
				return err
			}
		}

		removed, err = qtx.DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		s.logger.Error("purge employees failed", zap.String("request_id", rid), zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if removed > 0 {
		s.invalidateDirectoryCache(ctx)
	}

	s.logger.Info("purge employees success",
		zap.String("badge_prefix", prefix),
		zap.Int64("removed", removed),
	)
	return removed, nil
}

func (s *service) invalidateDirectoryCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DirectoryCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee directory cache",
			zap.Error(err),
			zap.String("key", DirectoryCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          empl.ID.String(),
		BadgeNumber: empl.BadgeNumber,
		Name:        empl.Name,
		Phone:       empl.Phone,
		HourlyRate:  empl.HourlyRate.StringFixed(2),
	}
}
