package summary

type TotalHoursResponse struct {
	BadgeNumber string `json:"badge_number"`
	TotalHours  string `json:"total_hours"`
}

type ResetHoursResponse struct {
	BadgeNumber  string `json:"badge_number"`
	EntriesReset int64  `json:"entries_reset"`
}
