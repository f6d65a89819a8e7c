package entities

import (
	"errors"
	"time"
)

// Tag-related sentinel errors.
var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameRequired = errors.New("tag name is required")
)

// Tag is a user-owned label attached to notes. Names are not unique per
// owner; duplicates are allowed.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
