package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NameRequest carries a name for creating or renaming a tag or a
// category.
type NameRequest struct {
	Name string `json:"name"`
}

// Validate validates the name payload.
func (r *NameRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required),
	)
}
