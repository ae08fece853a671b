package employee

// Hourly rate rides as a string so precision violations ("15.555") and
// non-numeric input ("abc") reach the validator intact.
type CreateEmployeeRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	HourlyRate  string `json:"hourly_rate" binding:"required"`
}

type UpdateEmployeeRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	HourlyRate  string `json:"hourly_rate" binding:"required"`
}

type PurgeEmployeesRequest struct {
	BadgePrefix string `json:"badge_prefix" binding:"required"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	BadgeNumber string `json:"badge_number"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	HourlyRate  string `json:"hourly_rate"`
	TotalHours  string `json:"total_hours,omitempty"`
}

type DirectoryEntryResponse struct {
	ID          string `json:"id"`
	BadgeNumber string `json:"badge_number"`
	Name        string `json:"name"`
}

type PurgeEmployeesResponse struct {
	BadgePrefix string `json:"badge_prefix"`
	Removed     int64  `json:"removed"`
}
