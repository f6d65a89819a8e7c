// Package repositories defines the persistence interfaces of the service.
package repositories

import (
	"context"

	"notedeck/internal/domain/entities"
)

// NoteFilter narrows a note listing. Zero values mean "no filter".
// Query matches title or content case-insensitively; TagID and
// CategoryID match exactly.
type NoteFilter struct {
	Query      string
	TagID      string
	CategoryID string
}

// NoteChange carries the writable fields of a note. A nil CategoryID
// clears the category reference.
type NoteChange struct {
	Title      string
	Content    string
	IsPublic   bool
	TagIDs     []string
	CategoryID *string
}

// NoteRepository persists notes. Every mutating method is scoped by the
// owner id inside the same query, so a note that exists but belongs to
// another user behaves exactly like a missing one.
type NoteRepository interface {
	// Create stores a new note and returns it with resolved references.
	Create(ctx context.Context, ownerID string, change *NoteChange) (*entities.Note, error)
	// GetByID fetches a note by id without owner scoping; callers must
	// enforce "owner or public" before disclosure.
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	// List returns the owner's notes matching the filter, most recently
	// updated first, with tags and category resolved.
	List(ctx context.Context, ownerID string, filter *NoteFilter) ([]*entities.Note, error)
	// Update atomically replaces the note's fields where id and owner
	// both match, returning entities.ErrNoteNotFound otherwise.
	Update(ctx context.Context, noteID, ownerID string, change *NoteChange) (*entities.Note, error)
	// SetVisibility updates only the public flag, owner-scoped.
	SetVisibility(ctx context.Context, noteID, ownerID string, isPublic bool) (*entities.Note, error)
	// Delete removes the note where id and owner both match.
	Delete(ctx context.Context, noteID, ownerID string) error
}
