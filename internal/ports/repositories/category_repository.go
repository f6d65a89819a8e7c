package repositories

import (
	"context"

	"notedeck/internal/domain/entities"
)

// CategoryRepository persists categories, owner-scoped.
type CategoryRepository interface {
	Create(ctx context.Context, ownerID, name string) (*entities.Category, error)
	// List returns the owner's categories sorted by name ascending.
	List(ctx context.Context, ownerID string) ([]*entities.Category, error)
	Rename(ctx context.Context, categoryID, ownerID, name string) (*entities.Category, error)
	// Delete removes the category; notes referencing it keep existing
	// with the reference cleared.
	Delete(ctx context.Context, categoryID, ownerID string) error
	// Owned reports whether the category belongs to the owner.
	Owned(ctx context.Context, ownerID, categoryID string) (bool, error)
}
