package events

import "time"

const ClockTopic = "timeclock.employee.clock.v1"

const (
	ClockInEventType  = "employee_clocked_in"
	ClockOutEventType = "employee_clocked_out"
)

// ClockEvent is emitted for every completed clock transition. Message
// is the human-readable line the notifier delivers as-is.
type ClockEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	EmployeeID  string    `json:"employee_id"`
	BadgeNumber string    `json:"badge_number"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}
