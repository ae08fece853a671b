package timelog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timelog_repo.go -destination=mock/timelog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindEmployeeForUpdate(ctx context.Context, badge string) (*EmployeeRef, error)
	FindEmployeeByBadge(ctx context.Context, badge string) (*EmployeeRef, error)
	FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*TimeLog, error)
	Create(ctx context.Context, log *TimeLog) error
	Update(ctx context.Context, log *TimeLog) error
	FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]TimeLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// FindEmployeeForUpdate row-locks the employee so concurrent clock
// transitions for the same badge serialize on the lock instead of both
// observing the same ledger state.
func (r *repository) FindEmployeeForUpdate(ctx context.Context, badge string) (*EmployeeRef, error) {
	var empl EmployeeRef
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&empl, "badge_number = ?", badge).Error
	return &empl, err
}

func (r *repository) FindEmployeeByBadge(ctx context.Context, badge string) (*EmployeeRef, error) {
	var empl EmployeeRef
	err := r.db.WithContext(ctx).
		First(&empl, "badge_number = ?", badge).Error
	return &empl, err
}

// FindOpenByEmployee returns the most recently inserted open entry.
func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*TimeLog, error) {
	var log TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_out IS NULL").
		Order("created_at DESC").
		First(&log).Error
	return &log, err
}

func (r *repository) Create(ctx context.Context, log *TimeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) Update(ctx context.Context, log *TimeLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("clock_in DESC").
		Find(&rows).Error
	return rows, err
}
