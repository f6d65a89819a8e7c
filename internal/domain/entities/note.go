// Package entities defines the domain entities of the service.
package entities

import (
	"errors"
	"time"
)

// Note-related sentinel errors. A note that does not exist and a note
// owned by someone else are deliberately indistinguishable.
var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrReferenceNotOwned = errors.New("referenced tag or category does not belong to the user")
)

// Note is a user's note. Tags and Category are resolved referenced
// records; either may be missing when the referenced record was deleted.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"isPublic"`
	Tags      []*Tag    `json:"tags"`
	Category  *Category `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
