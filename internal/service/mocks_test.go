package service

import (
	"context"

	"github.com/spec-kit/mini-crm/internal/domain"
	"github.com/spec-kit/mini-crm/internal/repository"
)

// MockTaskRepository implements repository.TaskRepository.
type MockTaskRepository struct {
	CreateFunc            func(ctx context.Context, task *domain.Task) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Task, error)
	GetWithRelationsFunc  func(ctx context.Context, id string) (*domain.Task, error)
	ListWithRelationsFunc func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error)
	UpdateStatusFunc      func(ctx context.Context, id string, status domain.TaskStatus) error
}

var _ repository.TaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetWithRelations(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetWithRelationsFunc != nil {
		return m.GetWithRelationsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) ListWithRelations(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if m.ListWithRelationsFunc != nil {
		return m.ListWithRelationsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockUserRepository implements repository.UserRepository.
type MockUserRepository struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockCustomerRepository implements repository.CustomerRepository.
type MockCustomerRepository struct {
	CreateFunc   func(ctx context.Context, customer *domain.Customer) error
	UpdateFunc   func(ctx context.Context, customer *domain.Customer) error
	DeleteFunc   func(ctx context.Context, id string) error
	GetByIDFunc  func(ctx context.Context, id string) (*domain.Customer, error)
	ListPageFunc func(ctx context.Context, limit, offset int) ([]domain.Customer, int64, error)
}

var _ repository.CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customer)
	}
	return nil
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, customer)
	}
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCustomerRepository) ListPage(ctx context.Context, limit, offset int) ([]domain.Customer, int64, error) {
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}
