package events

import (
	"time"

	"github.com/spec-kit/mini-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated       EventType = "task_created"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventCustomerCreated   EventType = "customer_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	Title        string            `json:"title"`
	AssignedToID string            `json:"assigned_to_id"`
	CustomerID   string            `json:"customer_id"`
	Status       domain.TaskStatus `json:"status"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// CustomerCreatedPayload payload.
type CustomerCreatedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
