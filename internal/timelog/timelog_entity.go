package timelog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLog is one attendance entry. An entry is open while ClockOut is
// NULL; HoursWorked is computed exactly once, at close.
type TimeLog struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID  uuid.UUID        `gorm:"column:employee_id;type:uuid;not null;index"`
	ClockIn     time.Time        `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut    *time.Time       `gorm:"column:clock_out;type:timestamptz"`
	HoursWorked *decimal.Decimal `gorm:"column:hours_worked;type:numeric(10,2)"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	Employee    *EmployeeRef     `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

type EmployeeRef struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BadgeNumber string    `gorm:"column:badge_number"`
	Name        string    `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
