package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notedeck/internal/app"
	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
)

const (
	ownerID = "11111111-1111-1111-1111-111111111111"
	otherID = "22222222-2222-2222-2222-222222222222"
	noteID  = "33333333-3333-3333-3333-333333333333"
	tagID   = "44444444-4444-4444-4444-444444444444"
	catID   = "55555555-5555-5555-5555-555555555555"
)

func newNoteUseCase(noteRepo *mockNoteRepo, tagRepo *mockTagRepo, categoryRepo *mockCategoryRepo) *app.NoteUseCase {
	return app.NewNoteUseCase(noteRepo, tagRepo, categoryRepo, nil, 0)
}

func TestNoteUseCaseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank title", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		_, err := uc.Create(ctx, ownerID, &repositories.NoteChange{Title: "   "})

		assert.ErrorIs(t, err, entities.ErrTitleRequired)
		noteRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects anonymous caller", func(t *testing.T) {
		uc := newNoteUseCase(new(mockNoteRepo), new(mockTagRepo), new(mockCategoryRepo))

		_, err := uc.Create(ctx, "", &repositories.NoteChange{Title: "x"})

		assert.ErrorIs(t, err, app.ErrUnauthorized)
	})

	t.Run("strips placeholder tags and the none category", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		tagRepo := new(mockTagRepo)
		uc := newNoteUseCase(noteRepo, tagRepo, new(mockCategoryRepo))

		none := "none"
		change := &repositories.NoteChange{
			Title:      "  groceries  ",
			TagIDs:     []string{"new-12345", tagID, ""},
			CategoryID: &none,
		}

		tagRepo.On("AllOwned", ctx, ownerID, []string{tagID}).Return(true, nil)
		noteRepo.On("Create", ctx, ownerID, mock.MatchedBy(func(c *repositories.NoteChange) bool {
			return c.Title == "groceries" &&
				len(c.TagIDs) == 1 && c.TagIDs[0] == tagID &&
				c.CategoryID == nil
		})).Return(&entities.Note{ID: noteID, UserID: ownerID, Title: "groceries"}, nil)

		note, err := uc.Create(ctx, ownerID, change)

		require.NoError(t, err)
		assert.Equal(t, noteID, note.ID)
		noteRepo.AssertExpectations(t)
		tagRepo.AssertExpectations(t)
	})

	t.Run("rejects a tag owned by someone else", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		tagRepo := new(mockTagRepo)
		uc := newNoteUseCase(noteRepo, tagRepo, new(mockCategoryRepo))

		tagRepo.On("AllOwned", ctx, ownerID, []string{tagID}).Return(false, nil)

		_, err := uc.Create(ctx, ownerID, &repositories.NoteChange{
			Title:  "stolen tags",
			TagIDs: []string{tagID},
		})

		assert.ErrorIs(t, err, entities.ErrReferenceNotOwned)
		noteRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects a category owned by someone else", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		categoryRepo := new(mockCategoryRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), categoryRepo)

		foreign := catID
		categoryRepo.On("Owned", ctx, ownerID, catID).Return(false, nil)

		_, err := uc.Create(ctx, ownerID, &repositories.NoteChange{
			Title:      "misfiled",
			CategoryID: &foreign,
		})

		assert.ErrorIs(t, err, entities.ErrReferenceNotOwned)
		noteRepo.AssertNotCalled(t, "Create")
	})
}

func TestNoteUseCaseGetForViewer(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees a private note", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("GetByID", ctx, noteID).Return(&entities.Note{ID: noteID, UserID: ownerID}, nil)

		note, err := uc.GetForViewer(ctx, noteID, ownerID)

		require.NoError(t, err)
		assert.Equal(t, noteID, note.ID)
	})

	t.Run("private note reads as missing for another viewer", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("GetByID", ctx, noteID).Return(&entities.Note{ID: noteID, UserID: ownerID}, nil)

		_, err := uc.GetForViewer(ctx, noteID, otherID)

		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("public note is visible to anyone", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("GetByID", ctx, noteID).Return(&entities.Note{ID: noteID, UserID: ownerID, IsPublic: true}, nil)

		note, err := uc.GetForViewer(ctx, noteID, "")

		require.NoError(t, err)
		assert.True(t, note.IsPublic)
	})
}

func TestNoteUseCaseGetShared(t *testing.T) {
	ctx := context.Background()

	t.Run("private note is never disclosed", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("GetByID", ctx, noteID).Return(&entities.Note{ID: noteID, UserID: ownerID}, nil)

		_, err := uc.GetShared(ctx, noteID)

		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("second read is served from the cache", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		cache := newMemoryCache()
		uc := app.NewNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo), cache, time.Minute)

		noteRepo.On("GetByID", ctx, noteID).Return(&entities.Note{ID: noteID, UserID: ownerID, Title: "shared", IsPublic: true}, nil).Once()

		first, err := uc.GetShared(ctx, noteID)
		require.NoError(t, err)

		second, err := uc.GetShared(ctx, noteID)
		require.NoError(t, err)

		assert.Equal(t, first.Title, second.Title)
		noteRepo.AssertNumberOfCalls(t, "GetByID", 1)
	})
}

func TestNoteUseCaseList(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects anonymous caller", func(t *testing.T) {
		uc := newNoteUseCase(new(mockNoteRepo), new(mockTagRepo), new(mockCategoryRepo))

		_, err := uc.List(ctx, "", nil)

		assert.ErrorIs(t, err, app.ErrUnauthorized)
	})

	t.Run("nil filter defaults to everything", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("List", ctx, ownerID, &repositories.NoteFilter{}).Return([]*entities.Note{}, nil)

		notes, err := uc.List(ctx, ownerID, nil)

		require.NoError(t, err)
		assert.Empty(t, notes)
		noteRepo.AssertExpectations(t)
	})
}

func TestNoteUseCaseMutationsDropShareCache(t *testing.T) {
	ctx := context.Background()

	t.Run("visibility change invalidates the cached share view", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		cache := newMemoryCache()
		uc := app.NewNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo), cache, time.Minute)

		noteRepo.On("GetByID", ctx, noteID).Return(&entities.Note{ID: noteID, UserID: ownerID, IsPublic: true}, nil)
		noteRepo.On("SetVisibility", ctx, noteID, ownerID, false).Return(&entities.Note{ID: noteID, UserID: ownerID}, nil)

		_, err := uc.GetShared(ctx, noteID)
		require.NoError(t, err)

		_, err = uc.SetVisibility(ctx, noteID, ownerID, false)
		require.NoError(t, err)

		assert.Contains(t, cache.deleted, "share:note:"+noteID)
	})

	t.Run("delete invalidates the cached share view", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		cache := newMemoryCache()
		uc := app.NewNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo), cache, time.Minute)

		noteRepo.On("Delete", ctx, noteID, ownerID).Return(nil)

		require.NoError(t, uc.Delete(ctx, noteID, ownerID))
		assert.Contains(t, cache.deleted, "share:note:"+noteID)
	})
}

func TestNoteUseCaseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing or foreign note surfaces as not found", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("Update", ctx, noteID, otherID, mock.Anything).Return(nil, entities.ErrNoteNotFound)

		_, err := uc.Update(ctx, noteID, otherID, &repositories.NoteChange{Title: "hijack"})

		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("happy path normalizes before writing", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("Update", ctx, noteID, ownerID, mock.MatchedBy(func(c *repositories.NoteChange) bool {
			return c.Title == "trimmed"
		})).Return(&entities.Note{ID: noteID, UserID: ownerID, Title: "trimmed"}, nil)

		note, err := uc.Update(ctx, noteID, ownerID, &repositories.NoteChange{Title: " trimmed "})

		require.NoError(t, err)
		assert.Equal(t, "trimmed", note.Title)
	})
}

func TestNoteUseCaseDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cross owner delete reads as not found", func(t *testing.T) {
		noteRepo := new(mockNoteRepo)
		uc := newNoteUseCase(noteRepo, new(mockTagRepo), new(mockCategoryRepo))

		noteRepo.On("Delete", ctx, noteID, otherID).Return(entities.ErrNoteNotFound)

		err := uc.Delete(ctx, noteID, otherID)

		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})
}
