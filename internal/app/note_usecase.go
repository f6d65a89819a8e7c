package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/cache"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

// tempTagPrefix marks tag ids the client fabricated for not-yet-saved
// tags; they are stripped before storing.
const tempTagPrefix = "new-"

// noCategorySentinel is the client value meaning "no category".
const noCategorySentinel = "none"

const (
	msgListingNotes      = "listing notes"
	msgGettingNote       = "getting note"
	msgCreatingNote      = "creating note"
	msgUpdatingNote      = "updating note"
	msgSettingVisibility = "setting note visibility"
	msgDeletingNote      = "deleting note"

	msgErrListNotes     = "failed to list notes"
	msgErrGetNote       = "failed to get note"
	msgErrCreateNote    = "failed to create note"
	msgErrUpdateNote    = "failed to update note"
	msgErrSetVisibility = "failed to set note visibility"
	msgErrDeleteNote    = "failed to delete note"
	msgErrCheckRefs     = "failed to verify referenced records"
	msgBlankTitle       = "rejected blank title"
	msgForeignReference = "referenced tag or category not owned by user"
	msgErrShareCache    = "share cache unavailable"
)

// NoteUseCase implements the note operations, all scoped to the calling
// owner.
type NoteUseCase struct {
	noteRepo     repositories.NoteRepository
	tagRepo      repositories.TagRepository
	categoryRepo repositories.CategoryRepository
	shareCache   cache.Cache
	shareTTL     time.Duration
}

// NewNoteUseCase creates a new NoteUseCase. A nil shareCache disables
// caching of the anonymous share view.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	tagRepo repositories.TagRepository,
	categoryRepo repositories.CategoryRepository,
	shareCache cache.Cache,
	shareTTL time.Duration,
) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:     noteRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		shareCache:   shareCache,
		shareTTL:     shareTTL,
	}
}

func shareCacheKey(noteID string) string {
	return "share:note:" + noteID
}

// List returns the owner's notes matching the filter, newest update
// first, with tag and category references resolved.
func (uc *NoteUseCase) List(ctx context.Context, ownerID string, filter *repositories.NoteFilter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.List"))
	log.Debug(ctx, msgListingNotes, zap.String("ownerID", ownerID))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if filter == nil {
		filter = &repositories.NoteFilter{}
	}

	notes, err := uc.noteRepo.List(ctx, ownerID, filter)
	if err != nil {
		log.Error(ctx, msgErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrListNotes, err)
	}
	return notes, nil
}

// GetForViewer fetches a note by id and discloses it only when the
// viewer owns it or the note is public. Anything else reads as not
// found.
func (uc *NoteUseCase) GetForViewer(ctx context.Context, noteID, viewerID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.GetForViewer"))
	log.Debug(ctx, msgGettingNote, zap.String("noteID", noteID))

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		log.Error(ctx, msgErrGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrGetNote, err)
	}
	if note.UserID != viewerID && !note.IsPublic {
		return nil, entities.ErrNoteNotFound
	}
	return note, nil
}

// GetShared fetches a note for the anonymous share view; only public
// notes are disclosed, private ones read as not found. Results are
// cached; mutations on the note drop the cached entry.
func (uc *NoteUseCase) GetShared(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.GetShared"))
	log.Debug(ctx, msgGettingNote, zap.String("noteID", noteID))

	if cached := uc.cachedShared(ctx, noteID); cached != nil {
		return cached, nil
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		log.Error(ctx, msgErrGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrGetNote, err)
	}
	if !note.IsPublic {
		return nil, entities.ErrNoteNotFound
	}

	uc.storeShared(ctx, note)
	return note, nil
}

// cachedShared returns the cached share view of the note, or nil on a
// miss or any cache failure.
func (uc *NoteUseCase) cachedShared(ctx context.Context, noteID string) *entities.Note {
	if uc.shareCache == nil {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.cachedShared"))

	raw, err := uc.shareCache.Get(ctx, shareCacheKey(noteID))
	if err != nil {
		log.Warn(ctx, msgErrShareCache, zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}

	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		log.Warn(ctx, msgErrShareCache, zap.Error(err))
		return nil
	}
	return &note
}

// storeShared caches the share view of a public note; failures only
// degrade to uncached reads.
func (uc *NoteUseCase) storeShared(ctx context.Context, note *entities.Note) {
	if uc.shareCache == nil {
		return
	}
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.storeShared"))

	raw, err := json.Marshal(note)
	if err != nil {
		log.Warn(ctx, msgErrShareCache, zap.Error(err))
		return
	}
	if err := uc.shareCache.Set(ctx, shareCacheKey(note.ID), string(raw), uc.shareTTL); err != nil {
		log.Warn(ctx, msgErrShareCache, zap.Error(err))
	}
}

// dropShared invalidates the cached share view after a mutation.
func (uc *NoteUseCase) dropShared(ctx context.Context, noteID string) {
	if uc.shareCache == nil {
		return
	}
	if err := uc.shareCache.Delete(ctx, shareCacheKey(noteID)); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrShareCache, zap.Error(err))
	}
}

// Create stores a new note for the owner. The title must be non-blank
// after trimming; placeholder tag ids and the "no category" sentinel
// are normalized away, and remaining references must belong to the
// owner.
func (uc *NoteUseCase) Create(ctx context.Context, ownerID string, change *repositories.NoteChange) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Create"))
	log.Debug(ctx, msgCreatingNote, zap.String("ownerID", ownerID))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}

	normalizeChange(change)
	if change.Title == "" {
		log.Debug(ctx, msgBlankTitle)
		return nil, entities.ErrTitleRequired
	}

	if err := uc.verifyReferences(ctx, ownerID, change); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.Create(ctx, ownerID, change)
	if err != nil {
		log.Error(ctx, msgErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrCreateNote, err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// Update replaces the note's fields in one owner-scoped atomic query;
// a note that is missing or not owned surfaces as
// entities.ErrNoteNotFound.
func (uc *NoteUseCase) Update(ctx context.Context, noteID, ownerID string, change *repositories.NoteChange) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Update"))
	log.Debug(ctx, msgUpdatingNote, zap.String("noteID", noteID))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}

	normalizeChange(change)
	if change.Title == "" {
		log.Debug(ctx, msgBlankTitle)
		return nil, entities.ErrTitleRequired
	}

	if err := uc.verifyReferences(ctx, ownerID, change); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.Update(ctx, noteID, ownerID, change)
	if err != nil {
		log.Error(ctx, msgErrUpdateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrUpdateNote, err)
	}

	uc.dropShared(ctx, noteID)
	return note, nil
}

// SetVisibility flips only the public flag, leaving every other field
// untouched. The editor uses this for its isolated visibility saves.
func (uc *NoteUseCase) SetVisibility(ctx context.Context, noteID, ownerID string, isPublic bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.SetVisibility"))
	log.Debug(ctx, msgSettingVisibility, zap.String("noteID", noteID), zap.Bool("isPublic", isPublic))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}

	note, err := uc.noteRepo.SetVisibility(ctx, noteID, ownerID, isPublic)
	if err != nil {
		log.Error(ctx, msgErrSetVisibility, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrSetVisibility, err)
	}

	uc.dropShared(ctx, noteID)
	return note, nil
}

// Delete removes the note where id and owner both match. References
// from the note to tags and categories disappear with it; nothing else
// is cascaded.
func (uc *NoteUseCase) Delete(ctx context.Context, noteID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Delete"))
	log.Debug(ctx, msgDeletingNote, zap.String("noteID", noteID))

	if ownerID == "" {
		return ErrUnauthorized
	}

	if err := uc.noteRepo.Delete(ctx, noteID, ownerID); err != nil {
		log.Error(ctx, msgErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", msgErrDeleteNote, err)
	}

	uc.dropShared(ctx, noteID)
	return nil
}

// verifyReferences checks that every tag id and the category id in the
// change belong to the owner.
func (uc *NoteUseCase) verifyReferences(ctx context.Context, ownerID string, change *repositories.NoteChange) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.verifyReferences"))

	if len(change.TagIDs) > 0 {
		owned, err := uc.tagRepo.AllOwned(ctx, ownerID, change.TagIDs)
		if err != nil {
			log.Error(ctx, msgErrCheckRefs, zap.Error(err))
			return fmt.Errorf("%s: %w", msgErrCheckRefs, err)
		}
		if !owned {
			log.Debug(ctx, msgForeignReference)
			return entities.ErrReferenceNotOwned
		}
	}

	if change.CategoryID != nil {
		owned, err := uc.categoryRepo.Owned(ctx, ownerID, *change.CategoryID)
		if err != nil {
			log.Error(ctx, msgErrCheckRefs, zap.Error(err))
			return fmt.Errorf("%s: %w", msgErrCheckRefs, err)
		}
		if !owned {
			log.Debug(ctx, msgForeignReference)
			return entities.ErrReferenceNotOwned
		}
	}
	return nil
}

// normalizeChange trims the title, strips placeholder tag ids, and
// turns the "no category" sentinel into an absent category.
func normalizeChange(change *repositories.NoteChange) {
	change.Title = strings.TrimSpace(change.Title)

	tags := make([]string, 0, len(change.TagIDs))
	for _, id := range change.TagIDs {
		if id == "" || strings.HasPrefix(id, tempTagPrefix) {
			continue
		}
		tags = append(tags, id)
	}
	change.TagIDs = tags

	if change.CategoryID != nil {
		v := strings.TrimSpace(*change.CategoryID)
		if v == "" || v == noCategorySentinel {
			change.CategoryID = nil
		} else {
			*change.CategoryID = v
		}
	}
}
