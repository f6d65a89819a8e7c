// Package notes contains the HTTP handlers for note management.
package notes

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notedeck/internal/adapters/http/dto"
	"notedeck/internal/adapters/http/httperr"
	"notedeck/internal/adapters/http/middleware"
	"notedeck/internal/app"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

const (
	logHandlerCreateNote    = "handling create note request"
	logHandlerGetNote       = "handling get note request"
	logHandlerListNotes     = "handling list notes request"
	logHandlerUpdateNote    = "handling update note request"
	logHandlerSetVisibility = "handling set visibility request"
	logHandlerDeleteNote    = "handling delete note request"

	errMsgInvalidNoteID      = "invalid note id"
	errMsgInvalidRequestBody = "invalid request body"

	// allFilter and noneFilter are what the client sends when a dropdown
	// filter is left at its default or cleared.
	allFilter  = "all"
	noneFilter = "none"
)

// Handler serves the note endpoints.
type Handler struct {
	noteUseCase *app.NoteUseCase
}

// NewHandler creates a new notes handler.
func NewHandler(noteUseCase *app.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// CreateNote handles note creation.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, logHandlerCreateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	note, err := h.noteUseCase.Create(userCtx, middleware.UserID(ctx), req.ToChange())
	if err != nil {
		log.Debug(userCtx, "failed to create note", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(note)
}

// GetNote returns a single note. The owner sees any of their notes;
// everyone else only sees it when it is public.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(userCtx, logHandlerGetNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidNoteID,
		})
	}

	note, err := h.noteUseCase.GetForViewer(userCtx, noteID, middleware.UserID(ctx))
	if err != nil {
		log.Debug(userCtx, "failed to get note", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(note)
}

// ListNotes returns the owner's notes, optionally narrowed by a text
// query, a tag, and a category. All filters combine with AND.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(userCtx, logHandlerListNotes)

	filter := &repositories.NoteFilter{
		Query:      strings.TrimSpace(ctx.Query("q")),
		TagID:      normalizeFilter(ctx.Query("tag")),
		CategoryID: normalizeFilter(ctx.Query("category")),
	}

	notes, err := h.noteUseCase.List(userCtx, middleware.UserID(ctx), filter)
	if err != nil {
		log.Debug(userCtx, "failed to list notes", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(fiber.Map{"notes": notes})
}

// UpdateNote handles a full note update.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(userCtx, logHandlerUpdateNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidNoteID,
		})
	}

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	note, err := h.noteUseCase.Update(userCtx, noteID, middleware.UserID(ctx), req.ToChange())
	if err != nil {
		log.Debug(userCtx, "failed to update note", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(note)
}

// SetVisibility toggles a note between private and public without
// touching any other field.
func (h *Handler) SetVisibility(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.SetVisibility"))
	log.Debug(userCtx, logHandlerSetVisibility)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidNoteID,
		})
	}

	var req dto.VisibilityRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	note, err := h.noteUseCase.SetVisibility(userCtx, noteID, middleware.UserID(ctx), *req.IsPublic)
	if err != nil {
		log.Debug(userCtx, "failed to set note visibility", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(note)
}

// DeleteNote handles note deletion.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, logHandlerDeleteNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidNoteID,
		})
	}

	if err := h.noteUseCase.Delete(userCtx, noteID, middleware.UserID(ctx)); err != nil {
		log.Debug(userCtx, "failed to delete note", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// normalizeFilter maps the client's sentinel dropdown values to an
// absent filter. Anything that is not a tag or category id is dropped
// too, so a stray value never reaches the uuid columns.
func normalizeFilter(value string) string {
	if value == "" || value == allFilter || value == noneFilter {
		return ""
	}
	if err := uuid.Validate(value); err != nil {
		return ""
	}
	return value
}
