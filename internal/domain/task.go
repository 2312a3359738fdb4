package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatus reports whether the value is a known status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskAssignee is the denormalized projection of the assigned user
// attached to returned tasks.
type TaskAssignee struct {
	ID    string
	Name  string
	Email string
}

// TaskCustomer is the denormalized projection of the referenced customer.
type TaskCustomer struct {
	ID      string
	Name    string
	Company *string
}

// Task is the aggregate for assigned work items. AssignedToID always
// references a user with role EMPLOYEE at creation time.
type Task struct {
	ID           string
	Title        string
	Description  *string
	AssignedToID string
	CustomerID   string
	Status       TaskStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Assignee *TaskAssignee
	Customer *TaskCustomer
}
