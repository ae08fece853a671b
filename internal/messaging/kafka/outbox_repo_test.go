package kafka

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{
		ID:        uuid.NewString(),
		Topic:     "timeclock.employee.clock.v1",
		EventType: "employee_clocked_in",
		Payload:   []byte(`{"message":"ok"}`),
	}

	assert.NoError(t, ValidateOutboxEvent(valid))

	tests := []struct {
		name   string
		mutate func(e *OutboxEvent)
	}{
		{"missing id", func(e *OutboxEvent) { e.ID = "" }},
		{"missing topic", func(e *OutboxEvent) { e.Topic = "" }},
		{"missing event type", func(e *OutboxEvent) { e.EventType = "" }},
		{"empty payload", func(e *OutboxEvent) { e.Payload = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.Error(t, ValidateOutboxEvent(e))
		})
	}
}
