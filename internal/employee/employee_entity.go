package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	BadgeNumber string          `gorm:"column:badge_number;type:text;not null;uniqueIndex:uq_employee_badge"`
	Name        string          `gorm:"column:name;type:text;not null"`
	Phone       string          `gorm:"column:phone;type:text;not null"`
	HourlyRate  decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeWithHours is the listing row: the employee plus the sum of
// hours over all their time logs.
type EmployeeWithHours struct {
	Employee
	TotalHours decimal.Decimal `gorm:"column:total_hours"`
}
