// Package tags contains the HTTP handlers for tag management.
package tags

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/adapters/http/dto"
	"notedeck/internal/adapters/http/httperr"
	"notedeck/internal/adapters/http/middleware"
	"notedeck/internal/app"
	"notedeck/pkg/logger"
)

const (
	logHandlerListTags  = "handling list tags request"
	logHandlerCreateTag = "handling create tag request"
	logHandlerRenameTag = "handling rename tag request"
	logHandlerDeleteTag = "handling delete tag request"

	errMsgInvalidTagID       = "invalid tag id"
	errMsgInvalidRequestBody = "invalid request body"
)

// Handler serves the tag endpoints.
type Handler struct {
	tagUseCase *app.TagUseCase
}

// NewHandler creates a new tags handler.
func NewHandler(tagUseCase *app.TagUseCase) *Handler {
	return &Handler{tagUseCase: tagUseCase}
}

// ListTags returns the owner's tags sorted by name.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListTags"))
	log.Debug(userCtx, logHandlerListTags)

	tags, err := h.tagUseCase.List(userCtx, middleware.UserID(ctx))
	if err != nil {
		log.Debug(userCtx, "failed to list tags", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(fiber.Map{"tags": tags})
}

// CreateTag handles tag creation.
func (h *Handler) CreateTag(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateTag"))
	log.Debug(userCtx, logHandlerCreateTag)

	var req dto.NameRequest
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

	tag, err := h.tagUseCase.Create(userCtx, middleware.UserID(ctx), req.Name)
	if err != nil {
		log.Debug(userCtx, "failed to create tag", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(tag)
}

// RenameTag handles tag renaming.
func (h *Handler) RenameTag(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.RenameTag"))
	log.Debug(userCtx, logHandlerRenameTag)

	tagID := ctx.Params("tag_id")
	if tagID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidTagID,
		})
	}

	var req dto.NameRequest
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

	tag, err := h.tagUseCase.Rename(userCtx, tagID, middleware.UserID(ctx), req.Name)
	if err != nil {
		log.Debug(userCtx, "failed to rename tag", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(tag)
}

// DeleteTag handles tag deletion. Notes referencing the tag keep
// working and simply lose the association.
func (h *Handler) DeleteTag(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteTag"))
	log.Debug(userCtx, logHandlerDeleteTag)

	tagID := ctx.Params("tag_id")
	if tagID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidTagID,
		})
	}

	if err := h.tagUseCase.Delete(userCtx, tagID, middleware.UserID(ctx)); err != nil {
		log.Debug(userCtx, "failed to delete tag", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
