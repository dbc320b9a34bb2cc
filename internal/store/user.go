package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bodasandeepsai/task-manager/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; the plaintext is never written.
	// Returns ErrEmailExists or ErrUsernameExists if the corresponding
	// unique field is already taken (case-insensitively).
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address, compared
	// case-insensitively. Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by username. Only identity fields
	// are populated; the password hash is never included.
	List(ctx context.Context) ([]*domain.User, error)

	// WithTx returns a UserStore bound to the provided transaction so
	// multiple operations can execute atomically. The transaction is
	// created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
