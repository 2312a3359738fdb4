package dto

import "time"

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company *string `json:"company"`
}

// UpdateCustomerRequest payload; all fields optional.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

// CustomerResponse is the customer projection returned to clients.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerPageResponse mirrors the paginated listing envelope.
type CustomerPageResponse struct {
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	TotalRecords int64              `json:"totalRecords"`
	TotalPages   int                `json:"totalPages"`
	Data         []CustomerResponse `json:"data"`
}
