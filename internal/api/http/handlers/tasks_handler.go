package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mini-crm/internal/api/dto"
	"github.com/spec-kit/mini-crm/internal/domain"
	"github.com/spec-kit/mini-crm/internal/service"
	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

// TasksHandler manages task endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// CreateTask POST /tasks.
func (h *TasksHandler) CreateTask(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || req.AssignedToID == "" || req.CustomerID == "" {
		return apperrors.NewValidationError("title, assigned_to_id, customer_id required", nil)
	}
	if req.Status != "" && !domain.ValidTaskStatus(req.Status) {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}

	task, err := h.service.CreateTask(c.Context(), caller, service.TaskCreateInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		CustomerID:   req.CustomerID,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": taskResponse(task)})
}

// ListTasks GET /tasks.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.ListTasks(c.Context(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateTaskStatus PATCH /tasks/:id/status.
func (h *TasksHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !domain.ValidTaskStatus(req.Status) {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}

	task, err := h.service.UpdateTaskStatus(c.Context(), caller, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedToID: task.AssignedToID,
		CustomerID:   task.CustomerID,
		Status:       task.Status,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
	if task.Assignee != nil {
		resp.AssignedTo = &dto.TaskAssigneeResponse{
			ID:    task.Assignee.ID,
			Name:  task.Assignee.Name,
			Email: task.Assignee.Email,
		}
	}
	if task.Customer != nil {
		resp.Customer = &dto.TaskCustomerResponse{
			ID:      task.Customer.ID,
			Name:    task.Customer.Name,
			Company: task.Customer.Company,
		}
	}
	return resp
}
