package summary

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRef struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BadgeNumber string    `gorm:"column:badge_number"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindEmployeeByBadge(ctx context.Context, badge string) (*EmployeeRef, error)
	FindEmployeeForUpdate(ctx context.Context, badge string) (*EmployeeRef, error)
	SumHoursByEmployee(ctx context.Context, employeeID uuid.UUID) (decimal.Decimal, error)
	ResetHoursByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
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

func (r *repository) FindEmployeeByBadge(ctx context.Context, badge string) (*EmployeeRef, error) {
	var empl EmployeeRef
	err := r.db.WithContext(ctx).
		First(&empl, "badge_number = ?", badge).Error
	return &empl, err
}

func (r *repository) FindEmployeeForUpdate(ctx context.Context, badge string) (*EmployeeRef, error) {
	var empl EmployeeRef
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&empl, "badge_number = ?", badge).Error
	return &empl, err
}

// SumHoursByEmployee totals the closed entries; open entries hold NULL
// hours and drop out of the SUM.
func (r *repository) SumHoursByEmployee(ctx context.Context, employeeID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(hours_worked), 0) FROM time_logs WHERE employee_id = ?", employeeID).
		Scan(&total).Error
	return total, err
}

// ResetHoursByEmployee zeroes the accumulated hours on every entry but
// touches nothing else: clock_out stays NULL on open entries, history
// is preserved.
func (r *repository) ResetHoursByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Exec("UPDATE time_logs SET hours_worked = 0 WHERE employee_id = ?", employeeID)
	return res.RowsAffected, res.Error
}
