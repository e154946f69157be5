package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	// FindByID returns the user with the given ID, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername returns the user with the given username, shared.ErrNotFound if absent
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save persists the user (insert or update)
	Save(ctx context.Context, user *User) error

	// ExistsByUsername reports whether a user with the username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
