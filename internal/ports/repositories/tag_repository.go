package repositories

import (
	"context"

	"notedeck/internal/domain/entities"
)

// TagRepository persists tags, owner-scoped like NoteRepository.
type TagRepository interface {
	Create(ctx context.Context, ownerID, name string) (*entities.Tag, error)
	// List returns the owner's tags sorted by name ascending.
	List(ctx context.Context, ownerID string) ([]*entities.Tag, error)
	Rename(ctx context.Context, tagID, ownerID, name string) (*entities.Tag, error)
	// Delete removes the tag; join rows referencing it are cascaded away
	// so notes survive with the reference omitted.
	Delete(ctx context.Context, tagID, ownerID string) error
	// AllOwned reports whether every given tag id belongs to the owner.
	AllOwned(ctx context.Context, ownerID string, tagIDs []string) (bool, error)
}
