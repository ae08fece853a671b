package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindPageWithHours(ctx context.Context, offset, limit int) ([]EmployeeWithHours, error)
	CountAll(ctx context.Context) (int64, error)
	FindDirectory(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteTimeLogs(ctx context.Context, employeeID string) error
	FindIDsByBadgePrefix(ctx context.Context, prefix string) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

// FindPageWithHours lists employees newest first with the summed hours
// of their time logs. Open entries carry NULL hours and contribute
// nothing to the sum.
func (r *repository) FindPageWithHours(ctx context.Context, offset, limit int) ([]EmployeeWithHours, error) {
	var rows []EmployeeWithHours
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("employees.*, COALESCE(SUM(time_logs.hours_worked), 0) AS total_hours").
		Joins("LEFT JOIN time_logs ON time_logs.employee_id = employees.id").
		Group("employees.id").
		Order("employees.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Count(&count).Error
	return count, err
}

func (r *repository) FindDirectory(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "badge_number", "name").
		Order("badge_number ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteTimeLogs(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM time_logs WHERE employee_id = ?", employeeID).Error
}

func (r *repository) FindIDsByBadgePrefix(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("badge_number LIKE ?", prefix+"%").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}
