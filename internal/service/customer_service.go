package service

import (
	"context"
	"strings"

	"github.com/spec-kit/mini-crm/internal/authz"
	"github.com/spec-kit/mini-crm/internal/domain"
	"github.com/spec-kit/mini-crm/internal/events"
	"github.com/spec-kit/mini-crm/internal/repository"
	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

// CustomerService coordinates customer CRUD with role gating and
// paginated listing.
type CustomerService struct {
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, dispatcher events.Dispatcher) *CustomerService {
	return &CustomerService{customers: customers, dispatcher: dispatcher}
}

// CustomerInput describes create/update payloads.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company *string
}

// CustomerPage is one page of customers plus pagination bookkeeping.
type CustomerPage struct {
	Page         int
	Limit        int
	TotalRecords int64
	TotalPages   int
	Items        []domain.Customer
}

// CreateCustomer persists a new customer. Admin only; duplicate email or
// phone surfaces as Conflict from the store adapter.
func (s *CustomerService) CreateCustomer(ctx context.Context, caller domain.Identity, input CustomerInput) (*domain.Customer, error) {
	if !authz.CanPerform(caller, authz.ActionCustomerCreate, "") {
		return nil, apperrors.NewForbidden("only admins can create customers")
	}

	customer := &domain.Customer{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Company: input.Company,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:     events.EventCustomerCreated,
			EntityID: customer.ID,
			Actor:    actorOf(caller),
			Payload:  events.CustomerCreatedPayload{Name: customer.Name, Email: customer.Email},
		})
	}
	return customer, nil
}

// GetCustomer fetches a single customer; readable by both roles.
func (s *CustomerService) GetCustomer(ctx context.Context, caller domain.Identity, id string) (*domain.Customer, error) {
	if !authz.CanPerform(caller, authz.ActionCustomerRead, "") {
		return nil, apperrors.NewForbidden("not allowed to read customers")
	}
	return s.customers.GetByID(ctx, id)
}

// ListCustomers returns one page ordered by creation time descending.
// Page count is ceil(totalRecords / limit).
func (s *CustomerService) ListCustomers(ctx context.Context, caller domain.Identity, page, limit int) (*CustomerPage, error) {
	if !authz.CanPerform(caller, authz.ActionCustomerRead, "") {
		return nil, apperrors.NewForbidden("not allowed to list customers")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	items, total, err := s.customers.ListPage(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &CustomerPage{
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   totalPages,
		Items:        items,
	}, nil
}

// UpdateCustomer applies partial changes to an existing customer. Admin
// only; NotFound and Conflict come from the store adapter.
func (s *CustomerService) UpdateCustomer(ctx context.Context, caller domain.Identity, id string, input CustomerUpdateInput) (*domain.Customer, error) {
	if !authz.CanPerform(caller, authz.ActionCustomerUpdate, "") {
		return nil, apperrors.NewForbidden("only admins can update customers")
	}

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Company != nil {
		customer.Company = input.Company
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CustomerUpdateInput carries optional fields for partial updates.
type CustomerUpdateInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

// DeleteCustomer removes a customer. Admin only. Deleting a customer
// still referenced by tasks is rejected with Conflict (restrict policy).
func (s *CustomerService) DeleteCustomer(ctx context.Context, caller domain.Identity, id string) error {
	if !authz.CanPerform(caller, authz.ActionCustomerDelete, "") {
		return apperrors.NewForbidden("only admins can delete customers")
	}
	return s.customers.Delete(ctx, id)
}
