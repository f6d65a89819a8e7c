package repositories

import (
	"context"

	"notedeck/internal/domain/entities"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
