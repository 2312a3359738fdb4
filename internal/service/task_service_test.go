package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/mini-crm/internal/domain"
	"github.com/spec-kit/mini-crm/internal/repository"
	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

var (
	adminCaller    = domain.Identity{ID: "admin-1", Role: domain.RoleAdmin}
	employeeCaller = domain.Identity{ID: "emp-1", Role: domain.RoleEmployee}
)

func employeeUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Jane Doe", Email: "jane@example.com", Role: domain.RoleEmployee}
}

func testCustomer(id string) *domain.Customer {
	company := "Acme International"
	return &domain.Customer{ID: id, Name: "Acme Corp", Email: "contact@acme.com", Phone: "+1234567890", Company: &company}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	return apperrors.ToDomainError(err).Code
}

func TestCreateTaskSuccess(t *testing.T) {
	ctx := context.Background()

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return employeeUser(id), nil
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return testCustomer(id), nil
		},
	}
	taskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *domain.Task) error {
			task.ID = "task-1"
			task.CreatedAt = time.Now()
			task.UpdatedAt = task.CreatedAt
			return nil
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: taskRepo, UserRepo: userRepo, CustomerRepo: customerRepo})

	task, err := svc.CreateTask(ctx, adminCaller, TaskCreateInput{
		Title:        "Fix server outage",
		AssignedToID: "emp-1",
		CustomerID:   "cust-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Status != domain.TaskStatusPending {
		t.Errorf("expected status to default to PENDING, got %s", task.Status)
	}
	if task.AssignedToID != "emp-1" || task.CustomerID != "cust-1" {
		t.Errorf("references not preserved: assigned_to=%s customer=%s", task.AssignedToID, task.CustomerID)
	}
	if task.Assignee == nil || task.Assignee.Email != "jane@example.com" {
		t.Error("expected assignee enrichment on created task")
	}
	if task.Customer == nil || task.Customer.Name != "Acme Corp" {
		t.Error("expected customer enrichment on created task")
	}
}

func TestCreateTaskExplicitStatusPreserved(t *testing.T) {
	ctx := context.Background()

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return employeeUser(id), nil
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return testCustomer(id), nil
		},
	}
	taskRepo := &MockTaskRepository{}

	svc := NewTaskService(TaskDependencies{TaskRepo: taskRepo, UserRepo: userRepo, CustomerRepo: customerRepo})

	task, err := svc.CreateTask(ctx, adminCaller, TaskCreateInput{
		Title:        "Prepare report",
		AssignedToID: "emp-1",
		CustomerID:   "cust-1",
		Status:       domain.TaskStatusInProgress,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Status != domain.TaskStatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", task.Status)
	}
}

func TestCreateTaskAssigneeNotFound(t *testing.T) {
	ctx := context.Background()
	customerLookups := 0

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, apperrors.NewNotFound("user", nil)
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			customerLookups++
			return testCustomer(id), nil
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: &MockTaskRepository{}, UserRepo: userRepo, CustomerRepo: customerRepo})

	_, err := svc.CreateTask(ctx, adminCaller, TaskCreateInput{
		Title:        "Fix server outage",
		AssignedToID: "missing",
		CustomerID:   "cust-1",
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if customerLookups != 0 {
		t.Errorf("customer lookup should not run when assignee is missing, ran %d times", customerLookups)
	}
}

func TestCreateTaskAssigneeNotEmployee(t *testing.T) {
	ctx := context.Background()

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Boss", Email: "boss@example.com", Role: domain.RoleAdmin}, nil
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return testCustomer(id), nil
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: &MockTaskRepository{}, UserRepo: userRepo, CustomerRepo: customerRepo})

	_, err := svc.CreateTask(ctx, adminCaller, TaskCreateInput{
		Title:        "Fix server outage",
		AssignedToID: "admin-2",
		CustomerID:   "cust-1",
	})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED for non-employee assignee, got %s", code)
	}
}

func TestCreateTaskCustomerNotFound(t *testing.T) {
	ctx := context.Background()

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return employeeUser(id), nil
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return nil, apperrors.NewNotFound("customer", nil)
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: &MockTaskRepository{}, UserRepo: userRepo, CustomerRepo: customerRepo})

	_, err := svc.CreateTask(ctx, adminCaller, TaskCreateInput{
		Title:        "Fix server outage",
		AssignedToID: "emp-1",
		CustomerID:   "missing",
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound for missing customer, got %v", err)
	}
}

func TestCreateTaskForbiddenBeforeLookups(t *testing.T) {
	ctx := context.Background()
	lookups := 0

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			lookups++
			return employeeUser(id), nil
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			lookups++
			return testCustomer(id), nil
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: &MockTaskRepository{}, UserRepo: userRepo, CustomerRepo: customerRepo})

	_, err := svc.CreateTask(ctx, employeeCaller, TaskCreateInput{
		Title:        "Fix server outage",
		AssignedToID: "emp-1",
		CustomerID:   "cust-1",
	})
	if !apperrors.IsForbidden(err) {
		t.Fatalf("expected Forbidden for employee caller, got %v", err)
	}
	if lookups != 0 {
		t.Errorf("no existence checks should run for a forbidden caller, ran %d", lookups)
	}
}

func TestListTasksScoping(t *testing.T) {
	ctx := context.Background()

	population := []domain.Task{
		{ID: "task-1", AssignedToID: "emp-1"},
		{ID: "task-2", AssignedToID: "emp-2"},
		{ID: "task-3", AssignedToID: "emp-1"},
	}
	taskRepo := &MockTaskRepository{
		ListWithRelationsFunc: func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
			if filter.AssignedToID == nil {
				return population, nil
			}
			var scoped []domain.Task
			for _, task := range population {
				if task.AssignedToID == *filter.AssignedToID {
					scoped = append(scoped, task)
				}
			}
			return scoped, nil
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: taskRepo, UserRepo: &MockUserRepository{}, CustomerRepo: &MockCustomerRepository{}})

	all, err := svc.ListTasks(ctx, adminCaller)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin should see all tasks, got %d", len(all))
	}

	own, err := svc.ListTasks(ctx, employeeCaller)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("employee should see only own tasks, got %d", len(own))
	}
	for _, task := range own {
		if task.AssignedToID != employeeCaller.ID {
			t.Errorf("employee listing leaked task %s assigned to %s", task.ID, task.AssignedToID)
		}
	}
}

func TestUpdateTaskStatusNotFoundBeforeOwnership(t *testing.T) {
	ctx := context.Background()

	taskRepo := &MockTaskRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return nil, apperrors.NewNotFound("task", nil)
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: taskRepo, UserRepo: &MockUserRepository{}, CustomerRepo: &MockCustomerRepository{}})

	// Caller would be forbidden if the task existed; NotFound must win.
	_, err := svc.UpdateTaskStatus(ctx, employeeCaller, "missing", domain.TaskStatusCompleted)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound for missing task, got %v", err)
	}
}

func TestUpdateTaskStatusOwnership(t *testing.T) {
	ctx := context.Background()

	newTaskRepo := func(assignedTo string) *MockTaskRepository {
		stored := &domain.Task{ID: "task-1", Title: "Fix server outage", AssignedToID: assignedTo, CustomerID: "cust-1", Status: domain.TaskStatusPending}
		return &MockTaskRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
				copied := *stored
				return &copied, nil
			},
			UpdateStatusFunc: func(ctx context.Context, id string, status domain.TaskStatus) error {
				stored.Status = status
				return nil
			},
			GetWithRelationsFunc: func(ctx context.Context, id string) (*domain.Task, error) {
				copied := *stored
				copied.Assignee = &domain.TaskAssignee{ID: assignedTo, Name: "Jane Doe", Email: "jane@example.com"}
				copied.Customer = &domain.TaskCustomer{ID: "cust-1", Name: "Acme Corp"}
				return &copied, nil
			},
		}
	}

	t.Run("assigned employee succeeds", func(t *testing.T) {
		svc := NewTaskService(TaskDependencies{TaskRepo: newTaskRepo("emp-1"), UserRepo: &MockUserRepository{}, CustomerRepo: &MockCustomerRepository{}})
		task, err := svc.UpdateTaskStatus(ctx, employeeCaller, "task-1", domain.TaskStatusCompleted)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Status != domain.TaskStatusCompleted {
			t.Errorf("expected COMPLETED, got %s", task.Status)
		}
		if task.Assignee == nil || task.Customer == nil {
			t.Error("expected enrichment on updated task")
		}
	})

	t.Run("other employee forbidden", func(t *testing.T) {
		svc := NewTaskService(TaskDependencies{TaskRepo: newTaskRepo("emp-2"), UserRepo: &MockUserRepository{}, CustomerRepo: &MockCustomerRepository{}})
		_, err := svc.UpdateTaskStatus(ctx, employeeCaller, "task-1", domain.TaskStatusCompleted)
		if !apperrors.IsForbidden(err) {
			t.Fatalf("expected Forbidden, got %v", err)
		}
	})

	t.Run("admin updates any task", func(t *testing.T) {
		svc := NewTaskService(TaskDependencies{TaskRepo: newTaskRepo("emp-2"), UserRepo: &MockUserRepository{}, CustomerRepo: &MockCustomerRepository{}})
		task, err := svc.UpdateTaskStatus(ctx, adminCaller, "task-1", domain.TaskStatusInProgress)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Status != domain.TaskStatusInProgress {
			t.Errorf("expected IN_PROGRESS, got %s", task.Status)
		}
	})
}

func TestCreateThenListRoundTrip(t *testing.T) {
	ctx := context.Background()

	var stored []domain.Task
	taskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *domain.Task) error {
			task.ID = "task-1"
			task.CreatedAt = time.Now()
			task.UpdatedAt = task.CreatedAt
			stored = append(stored, *task)
			return nil
		},
		ListWithRelationsFunc: func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
			return stored, nil
		},
	}
	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return employeeUser(id), nil
		},
	}
	customerRepo := &MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return testCustomer(id), nil
		},
	}

	svc := NewTaskService(TaskDependencies{TaskRepo: taskRepo, UserRepo: userRepo, CustomerRepo: customerRepo})

	description := "Restart the primary node"
	created, err := svc.CreateTask(ctx, adminCaller, TaskCreateInput{
		Title:        "Fix server outage",
		Description:  &description,
		AssignedToID: "emp-1",
		CustomerID:   "cust-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	listed, err := svc.ListTasks(ctx, adminCaller)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 task, got %d", len(listed))
	}

	got := listed[0]
	if got.Title != created.Title || got.Status != created.Status ||
		got.AssignedToID != created.AssignedToID || got.CustomerID != created.CustomerID {
		t.Errorf("listed task does not match created task: %+v vs %+v", got, created)
	}
	if got.Description == nil || *got.Description != description {
		t.Error("description lost in round trip")
	}
	if got.Assignee == nil || got.Customer == nil {
		t.Error("expected enrichment fields on listed task")
	}
}
