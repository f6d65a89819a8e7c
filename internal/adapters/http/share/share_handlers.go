// Package share contains the HTTP handler for the anonymous share
// view.
package share

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/adapters/http/httperr"
	"notedeck/internal/adapters/http/middleware"
	"notedeck/internal/app"
	"notedeck/pkg/logger"
)

const (
	logHandlerGetShared = "handling shared note request"

	errMsgInvalidNoteID = "invalid note id"
)

// Handler serves the public share endpoint. It requires no
// authentication; private notes read as not found.
type Handler struct {
	noteUseCase *app.NoteUseCase
}

// NewHandler creates a new share handler.
func NewHandler(noteUseCase *app.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// GetSharedNote returns a public note to anyone holding its link.
func (h *Handler) GetSharedNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetSharedNote"))
	log.Debug(userCtx, logHandlerGetShared)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidNoteID,
		})
	}

	note, err := h.noteUseCase.GetShared(userCtx, noteID)
	if err != nil {
		log.Debug(userCtx, "failed to get shared note", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(note)
}
