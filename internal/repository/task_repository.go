package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mini-crm/internal/domain"
)

// TaskFilter captures task listing parameters. A nil AssignedToID means
// no ownership scoping.
type TaskFilter struct {
	AssignedToID *string
}

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetWithRelations(ctx context.Context, id string) (*domain.Task, error)
	ListWithRelations(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates the repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, assigned_to_id, customer_id, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.AssignedToID,
		task.CustomerID,
		task.Status,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	return mapPgError(err, "task", "task violates a reference constraint")
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
        SELECT id, title, description, assigned_to_id, customer_id, status, created_at, updated_at
        FROM tasks WHERE id=$1`

	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.AssignedToID,
		&task.CustomerID,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err, "task", "")
	}
	return &task, nil
}

const taskWithRelationsSelect = `
        SELECT t.id, t.title, t.description, t.assigned_to_id, t.customer_id, t.status,
               t.created_at, t.updated_at,
               u.id, u.name, u.email,
               c.id, c.name, c.company
        FROM tasks t
        JOIN users u ON u.id = t.assigned_to_id
        JOIN customers c ON c.id = t.customer_id`

// GetWithRelations fetches a task enriched with its assignee and
// customer projections.
func (r *taskRepository) GetWithRelations(ctx context.Context, id string) (*domain.Task, error) {
	query := taskWithRelationsSelect + ` WHERE t.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	task, err := scanTaskWithRelations(row)
	if err != nil {
		return nil, mapPgError(err, "task", "")
	}
	return task, nil
}

func (r *taskRepository) ListWithRelations(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.AssignedToID != nil {
		args = append(args, *filter.AssignedToID)
		clauses = append(clauses, fmt.Sprintf("t.assigned_to_id=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.created_at DESC",
		taskWithRelationsSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		task, err := scanTaskWithRelations(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *task)
	}
	return result, rows.Err()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "task", "")
	}
	return nil
}

func scanTaskWithRelations(row pgx.Row) (*domain.Task, error) {
	var (
		task     domain.Task
		assignee domain.TaskAssignee
		customer domain.TaskCustomer
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.AssignedToID,
		&task.CustomerID,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
		&assignee.ID,
		&assignee.Name,
		&assignee.Email,
		&customer.ID,
		&customer.Name,
		&customer.Company,
	); err != nil {
		return nil, err
	}
	task.Assignee = &assignee
	task.Customer = &customer
	return &task, nil
}
