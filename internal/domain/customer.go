package domain

import "time"

// Customer models a CRM customer record. Email and phone are unique
// across all customers.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
