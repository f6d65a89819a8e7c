package editor

import (
	"context"

	"notedeck/internal/app"
	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
)

// useCaseSaver binds a note use case to a fixed owner so the session
// does not carry identity around.
type useCaseSaver struct {
	uc      *app.NoteUseCase
	ownerID string
}

// NewSaver wraps the note use case as a Saver acting for the given
// owner.
func NewSaver(uc *app.NoteUseCase, ownerID string) Saver {
	return &useCaseSaver{uc: uc, ownerID: ownerID}
}

func (s *useCaseSaver) Create(ctx context.Context, change *repositories.NoteChange) (*entities.Note, error) {
	return s.uc.Create(ctx, s.ownerID, change)
}

func (s *useCaseSaver) Update(ctx context.Context, noteID string, change *repositories.NoteChange) (*entities.Note, error) {
	return s.uc.Update(ctx, noteID, s.ownerID, change)
}

func (s *useCaseSaver) SetVisibility(ctx context.Context, noteID string, isPublic bool) (*entities.Note, error) {
	return s.uc.SetVisibility(ctx, noteID, s.ownerID, isPublic)
}
