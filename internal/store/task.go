package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bodasandeepsai/task-manager/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the assignee or creator does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListForUser returns every task the given user can see: tasks they
	// created plus tasks assigned to them. Storage order, no pagination.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update overwrites an existing task row.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrInvalidEntity if the new assignee does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
