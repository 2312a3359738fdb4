package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/mini-crm/internal/authz"
	"github.com/spec-kit/mini-crm/internal/domain"
	"github.com/spec-kit/mini-crm/internal/events"
	"github.com/spec-kit/mini-crm/internal/repository"
	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

// TaskService coordinates the task assignment workflow: cross-entity
// validation on creation, role-scoped listing and ownership-scoped
// status updates.
type TaskService struct {
	tasks      repository.TaskRepository
	users      repository.UserRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo     repository.TaskRepository
	UserRepo     repository.UserRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// TaskCreateInput describes task creation payload. Primitive shape is
// validated at the boundary; only business rules are checked here.
type TaskCreateInput struct {
	Title        string
	Description  *string
	AssignedToID string
	CustomerID   string
	Status       domain.TaskStatus
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		users:      deps.UserRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTask creates a task on behalf of an admin caller. Checks run in
// a fixed order so error precedence stays deterministic: authorization,
// then assignee existence, then assignee role, then customer existence.
func (s *TaskService) CreateTask(ctx context.Context, caller domain.Identity, input TaskCreateInput) (*domain.Task, error) {
	if !authz.CanPerform(caller, authz.ActionTaskCreate, "") {
		return nil, apperrors.NewForbidden("only admins can create tasks")
	}

	assignee, err := s.users.GetByID(ctx, input.AssignedToID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("assigned user", map[string]any{"id": input.AssignedToID})
		}
		return nil, err
	}
	if assignee.Role != domain.RoleEmployee {
		return nil, apperrors.NewValidationError("tasks can only be assigned to employees", map[string]any{"assigned_to_id": input.AssignedToID})
	}

	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		AssignedToID: assignee.ID,
		CustomerID:   customer.ID,
		Status:       input.Status,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	task.Assignee = &domain.TaskAssignee{ID: assignee.ID, Name: assignee.Name, Email: assignee.Email}
	task.Customer = &domain.TaskCustomer{ID: customer.ID, Name: customer.Name, Company: customer.Company}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTaskCreated,
		EntityID: task.ID,
		Actor:    actorOf(caller),
		Payload: events.TaskCreatedPayload{
			Title:        task.Title,
			AssignedToID: task.AssignedToID,
			CustomerID:   task.CustomerID,
			Status:       task.Status,
		},
	})
	return task, nil
}

// ListTasks returns tasks visible to the caller ordered by creation time
// descending. Admins see all tasks; employees only their own.
func (s *TaskService) ListTasks(ctx context.Context, caller domain.Identity) ([]domain.Task, error) {
	if !authz.CanPerform(caller, authz.ActionTaskList, "") {
		return nil, apperrors.NewForbidden("not allowed to list tasks")
	}
	filter := repository.TaskFilter{AssignedToID: authz.TaskScope(caller)}
	return s.tasks.ListWithRelations(ctx, filter)
}

// UpdateTaskStatus changes a task's status. Existence is checked before
// ownership: a nonexistent task yields NotFound even for a caller who
// would otherwise be forbidden.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, caller domain.Identity, taskID string, newStatus domain.TaskStatus) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(caller, authz.ActionTaskUpdate, task.AssignedToID) {
		return nil, apperrors.NewForbidden("you are not authorized to update this task")
	}

	oldStatus := task.Status
	if err := s.tasks.UpdateStatus(ctx, task.ID, newStatus); err != nil {
		return nil, err
	}

	updated, err := s.tasks.GetWithRelations(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTaskStatusChanged,
		EntityID: task.ID,
		Actor:    actorOf(caller),
		Payload: events.TaskStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return updated, nil
}

func (s *TaskService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(caller domain.Identity) events.Actor {
	return events.Actor{UserID: caller.ID, Role: caller.Role}
}
