package port

import (
	"context"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
)

// UserRepository exposes persistence behavior for users.
type UserRepository interface {
	// Create inserts the user. A duplicate email yields repository.ErrDuplicate.
	Create(ctx context.Context, user domain.User) error
	// FindByEmail yields repository.ErrNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
