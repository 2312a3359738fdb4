package dto

import (
	"time"

	"github.com/spec-kit/mini-crm/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title        string            `json:"title"`
	Description  *string           `json:"description"`
	AssignedToID string            `json:"assigned_to_id"`
	CustomerID   string            `json:"customer_id"`
	Status       domain.TaskStatus `json:"status"`
}

// UpdateTaskStatusRequest payload.
type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// TaskAssigneeResponse is the denormalized assignee projection.
type TaskAssigneeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskCustomerResponse is the denormalized customer projection.
type TaskCustomerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
}

// TaskResponse is a task enriched with assignee and customer fields.
type TaskResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  *string               `json:"description,omitempty"`
	AssignedToID string                `json:"assigned_to_id"`
	CustomerID   string                `json:"customer_id"`
	Status       domain.TaskStatus     `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	AssignedTo   *TaskAssigneeResponse `json:"assigned_to,omitempty"`
	Customer     *TaskCustomerResponse `json:"customer,omitempty"`
}
