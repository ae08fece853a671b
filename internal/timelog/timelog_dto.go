package timelog

type ClockRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required"`
}

type TimeLogResponse struct {
	ID          string  `json:"id"`
	BadgeNumber string  `json:"badge_number"`
	ClockIn     string  `json:"clock_in"`
	ClockOut    *string `json:"clock_out,omitempty"`
	HoursWorked *string `json:"hours_worked,omitempty"`
}
