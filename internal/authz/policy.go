// Package authz holds the pure authorization policy: decision functions
// over (caller identity, action, resource ownership) with no side effects.
// Callers decide which error kind to surface on deny.
package authz

import "github.com/spec-kit/mini-crm/internal/domain"

// Action enumerates guarded operations.
type Action string

const (
	ActionCustomerCreate Action = "customer:create"
	ActionCustomerRead   Action = "customer:read"
	ActionCustomerUpdate Action = "customer:update"
	ActionCustomerDelete Action = "customer:delete"
	ActionTaskCreate     Action = "task:create"
	ActionTaskList       Action = "task:list"
	ActionTaskUpdate     Action = "task:update_status"
)

// CanPerform decides whether the caller may perform the action.
// resourceOwnerID is the task assignee for ownership-scoped actions and
// empty otherwise.
func CanPerform(caller domain.Identity, action Action, resourceOwnerID string) bool {
	switch action {
	case ActionCustomerCreate, ActionCustomerUpdate, ActionCustomerDelete, ActionTaskCreate:
		return caller.Role == domain.RoleAdmin
	case ActionCustomerRead, ActionTaskList:
		return caller.Role == domain.RoleAdmin || caller.Role == domain.RoleEmployee
	case ActionTaskUpdate:
		if caller.Role == domain.RoleAdmin {
			return true
		}
		return caller.Role == domain.RoleEmployee && resourceOwnerID == caller.ID
	}
	return false
}

// TaskScope returns the assignee filter for task listing: nil for ADMIN
// (sees everything), the caller's own id for EMPLOYEE. Listing is a
// result-set filter rather than a binary gate.
func TaskScope(caller domain.Identity) *string {
	if caller.Role == domain.RoleAdmin {
		return nil
	}
	id := caller.ID
	return &id
}
