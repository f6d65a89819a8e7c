package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notedeck/internal/ports/repositories"
)

// NoteRequest carries the full state of a note for create and update.
// TagIDs may contain unsaved editor placeholders and CategoryID may be
// the "none" sentinel; the application layer strips both.
type NoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	IsPublic   bool     `json:"isPublic"`
	TagIDs     []string `json:"tags"`
	CategoryID string   `json:"category"`
}

// Validate validates the note payload.
func (r *NoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
	)
}

// ToChange converts the request into a repository change set.
func (r *NoteRequest) ToChange() *repositories.NoteChange {
	var categoryID *string
	if r.CategoryID != "" {
		categoryID = &r.CategoryID
	}
	return &repositories.NoteChange{
		Title:      r.Title,
		Content:    r.Content,
		IsPublic:   r.IsPublic,
		TagIDs:     r.TagIDs,
		CategoryID: categoryID,
	}
}

// VisibilityRequest toggles a note between private and public.
type VisibilityRequest struct {
	IsPublic *bool `json:"isPublic"`
}

// Validate validates the visibility payload.
func (r *VisibilityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IsPublic, validation.NotNil),
	)
}
