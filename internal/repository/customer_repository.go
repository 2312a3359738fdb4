package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mini-crm/internal/domain"
)

// CustomerRepository encapsulates customer persistence. Uniqueness and
// foreign-key violations surface as Conflict, absent ids as NotFound.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ListPage(ctx context.Context, limit, offset int) ([]domain.Customer, int64, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates the repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerConflictMsg = "email or phone already exists"

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, email, phone, company)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Company,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	return mapPgError(err, "customer", customerConflictMsg)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET name=$1, email=$2, phone=$3, company=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Company,
		customer.ID,
	).Scan(&customer.UpdatedAt)
	return mapPgError(err, "customer", customerConflictMsg)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err, "customer", customerConflictMsg)
	}
	if cmd.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "customer", "")
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const query = `
        SELECT id, name, email, phone, company, created_at, updated_at
        FROM customers WHERE id=$1`

	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Company,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err, "customer", "")
	}
	return &customer, nil
}

// ListPage returns one page of customers ordered by creation time
// descending, together with the total record count.
func (r *customerRepository) ListPage(ctx context.Context, limit, offset int) ([]domain.Customer, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
        SELECT id, name, email, phone, company, created_at, updated_at
        FROM customers
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.Company,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, customer)
	}
	return result, total, rows.Err()
}
