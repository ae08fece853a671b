package employee

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn              func(ctx context.Context, empl *Employee) error
	findByIDFn            func(ctx context.Context, id string) (*Employee, error)
	findPageWithHoursFn   func(ctx context.Context, offset, limit int) ([]EmployeeWithHours, error)
	countAllFn            func(ctx context.Context) (int64, error)
	findDirectoryFn       func(ctx context.Context) ([]Employee, error)
	updateFn              func(ctx context.Context, empl *Employee) error
	deleteFn              func(ctx context.Context, id string) (int64, error)
	deleteTimeLogsFn      func(ctx context.Context, employeeID string) error
	findIDsByBadgePrefix  func(ctx context.Context, prefix string) ([]string, error)
	deleteByIDsFn         func(ctx context.Context, ids []string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindPageWithHours(ctx context.Context, offset, limit int) ([]EmployeeWithHours, error) {
	return f.findPageWithHoursFn(ctx, offset, limit)
}
func (f *fakeRepo) CountAll(ctx context.Context) (int64, error) { return f.countAllFn(ctx) }
func (f *fakeRepo) FindDirectory(ctx context.Context) ([]Employee, error) {
	return f.findDirectoryFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) DeleteTimeLogs(ctx context.Context, employeeID string) error {
	return f.deleteTimeLogsFn(ctx, employeeID)
}
func (f *fakeRepo) FindIDsByBadgePrefix(ctx context.Context, prefix string) ([]string, error) {
	return f.findIDsByBadgePrefix(ctx, prefix)
}
func (f *fakeRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return f.deleteByIDsFn(ctx, ids)
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func TestService_Create(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	var saved *Employee
	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			saved = empl
			return nil
		},
	}

	svc := NewService(db, repo, nil, true)
	resp, err := svc.Create(ctx, CreateEmployeeRequest{
		BadgeNumber: "101",
		Name:        "Ana Lee",
		Phone:       "5551234567",
		HourlyRate:  "15.50",
	})

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "101", saved.BadgeNumber)
	assert.True(t, saved.HourlyRate.Equal(decimal.RequireFromString("15.50")))
	assert.Equal(t, "15.50", resp.HourlyRate)
	assert.NotEmpty(t, resp.ID)
}

func TestService_Create_ValidationViolations(t *testing.T) {
	db, _ := newTestDB(t)

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			t.Fatal("create must not reach the repository on invalid input")
			return nil
		},
	}

	svc := NewService(db, repo, nil, true)
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		BadgeNumber: "abc",
		Name:        "Ana Lee",
		Phone:       "5551234567",
		HourlyRate:  "15.555",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrValidationFailed)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	violations, ok := appErr.Details.([]Violation)
	assert.True(t, ok)
	assert.Len(t, violations, 2)
}

func TestService_Create_DuplicateBadge(t *testing.T) {
	db, _ := newTestDB(t)

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_badge"}
		},
	}

	svc := NewService(db, repo, nil, true)
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		BadgeNumber: "101",
		Name:        "Ana Lee",
		Phone:       "5551234567",
		HourlyRate:  "15.50",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrDuplicateBadge)
}

func TestService_Update_SelfCollisionAllowed(t *testing.T) {
	db, mock := newTestDB(t)
	id := uuid.New()

	existing := &Employee{
		ID:          id,
		BadgeNumber: "101",
		Name:        "Ana Lee",
		Phone:       "5551234567",
		HourlyRate:  decimal.RequireFromString("15.50"),
	}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, gotID string) (*Employee, error) {
			assert.Equal(t, id.String(), gotID)
			return existing, nil
		},
		updateFn: func(ctx context.Context, empl *Employee) error {
			// Same badge as before; the save must go through.
			assert.Equal(t, "101", empl.BadgeNumber)
			return nil
		},
	}

	svc := NewService(db, repo, nil, true)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), id.String(), UpdateEmployeeRequest{
		BadgeNumber: "101",
		Name:        "Ana Leigh",
		Phone:       "5551234567",
		HourlyRate:  "16.00",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ana Leigh", resp.Name)
	assert.Equal(t, "16.00", resp.HourlyRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_NotFound(t *testing.T) {
	db, mock := newTestDB(t)

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, nil, true)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), uuid.NewString(), UpdateEmployeeRequest{
		BadgeNumber: "101",
		Name:        "Ana Lee",
		Phone:       "5551234567",
		HourlyRate:  "15.50",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_RemovesLogsFirst(t *testing.T) {
	db, mock := newTestDB(t)
	id := uuid.NewString()

	var calls []string
	repo := &fakeRepo{
		deleteTimeLogsFn: func(ctx context.Context, employeeID string) error {
			calls = append(calls, "logs:"+employeeID)
			return nil
		},
		deleteFn: func(ctx context.Context, gotID string) (int64, error) {
			calls = append(calls, "employee:"+gotID)
			return 1, nil
		},
	}

	svc := NewService(db, repo, nil, true)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, []string{"logs:" + id, "employee:" + id}, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_AbsentRowReported(t *testing.T) {
	db, mock := newTestDB(t)

	repo := &fakeRepo{
		deleteTimeLogsFn: func(ctx context.Context, employeeID string) error { return nil },
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		},
	}

	svc := NewService(db, repo, nil, true)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_PurgeByBadgePrefix(t *testing.T) {
	db, mock := newTestDB(t)
	ids := []string{uuid.NewString(), uuid.NewString()}

	var logDeletes []string
	repo := &fakeRepo{
		findIDsByBadgePrefix: func(ctx context.Context, prefix string) ([]string, error) {
			assert.Equal(t, "EMP", prefix)
			return ids, nil
		},
		deleteTimeLogsFn: func(ctx context.Context, employeeID string) error {
			logDeletes = append(logDeletes, employeeID)
			return nil
		},
		deleteByIDsFn: func(ctx context.Context, gotIDs []string) (int64, error) {
			assert.Equal(t, ids, gotIDs)
			return int64(len(gotIDs)), nil
		},
	}

	svc := NewService(db, repo, nil, false)

	mock.ExpectBegin()
	mock.ExpectCommit()
	removed, err := svc.PurgeByBadgePrefix(context.Background(), "EMP")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Equal(t, ids, logDeletes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetPage(t *testing.T) {
	db, _ := newTestDB(t)

	repo := &fakeRepo{
		countAllFn: func(ctx context.Context) (int64, error) { return 12, nil },
		findPageWithHoursFn: func(ctx context.Context, offset, limit int) ([]EmployeeWithHours, error) {
			assert.Equal(t, 10, offset)
			assert.Equal(t, 10, limit)
			return []EmployeeWithHours{
				{
					Employee: Employee{
						ID:          uuid.New(),
						BadgeNumber: "101",
						Name:        "Ana Lee",
						Phone:       "5551234567",
						HourlyRate:  decimal.RequireFromString("15.50"),
					},
					TotalHours: decimal.RequireFromString("8.5"),
				},
			}, nil
		},
	}

	svc := NewService(db, repo, nil, true)
	rows, total, err := svc.GetPage(context.Background(), 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, rows, 1)
	assert.Equal(t, "8.50", rows[0].TotalHours)
	assert.Equal(t, "15.50", rows[0].HourlyRate)
}

func TestService_GetDirectory_CachesResult(t *testing.T) {
	db, _ := newTestDB(t)
	rdb, rmock := redismock.NewClientMock()

	empls := []Employee{
		{ID: uuid.New(), BadgeNumber: "101", Name: "Ana Lee"},
	}
	repo := &fakeRepo{
		findDirectoryFn: func(ctx context.Context) ([]Employee, error) { return empls, nil },
	}

	expected := []DirectoryEntryResponse{
		{ID: empls[0].ID.String(), BadgeNumber: "101", Name: "Ana Lee"},
	}
	jsonData, err := json.Marshal(expected)
	assert.NoError(t, err)

	rmock.ExpectGet(DirectoryCacheKey).RedisNil()
	rmock.ExpectSet(DirectoryCacheKey, jsonData, time.Hour).SetVal("OK")

	svc := NewService(db, repo, rdb, true)
	resp, err := svc.GetDirectory(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_Create_InvalidatesDirectoryCache(t *testing.T) {
	db, _ := newTestDB(t)
	rdb, rmock := redismock.NewClientMock()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error { return nil },
	}

	rmock.ExpectDel(DirectoryCacheKey).SetVal(1)

	svc := NewService(db, repo, rdb, true)
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		BadgeNumber: "101",
		Name:        "Ana Lee",
		Phone:       "5551234567",
		HourlyRate:  "15.50",
	})

	assert.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
}
