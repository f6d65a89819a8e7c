// Package categories contains the HTTP handlers for category
// management.
package categories

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
	logHandlerListCategories = "handling list categories request"
	logHandlerCreateCategory = "handling create category request"
	logHandlerRenameCategory = "handling rename category request"
	logHandlerDeleteCategory = "handling delete category request"

	errMsgInvalidCategoryID  = "invalid category id"
	errMsgInvalidRequestBody = "invalid request body"
)

// Handler serves the category endpoints.
type Handler struct {
	categoryUseCase *app.CategoryUseCase
}

// NewHandler creates a new categories handler.
func NewHandler(categoryUseCase *app.CategoryUseCase) *Handler {
	return &Handler{categoryUseCase: categoryUseCase}
}

// ListCategories returns the owner's categories sorted by name.
func (h *Handler) ListCategories(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListCategories"))
	log.Debug(userCtx, logHandlerListCategories)

	categories, err := h.categoryUseCase.List(userCtx, middleware.UserID(ctx))
	if err != nil {
		log.Debug(userCtx, "failed to list categories", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(fiber.Map{"categories": categories})
}

// CreateCategory handles category creation.
func (h *Handler) CreateCategory(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateCategory"))
	log.Debug(userCtx, logHandlerCreateCategory)

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

	category, err := h.categoryUseCase.Create(userCtx, middleware.UserID(ctx), req.Name)
	if err != nil {
		log.Debug(userCtx, "failed to create category", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(category)
}

// RenameCategory handles category renaming.
func (h *Handler) RenameCategory(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.RenameCategory"))
	log.Debug(userCtx, logHandlerRenameCategory)

	categoryID := ctx.Params("category_id")
	if categoryID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidCategoryID,
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

	category, err := h.categoryUseCase.Rename(userCtx, categoryID, middleware.UserID(ctx), req.Name)
	if err != nil {
		log.Debug(userCtx, "failed to rename category", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(category)
}

// DeleteCategory handles category deletion. Notes filed under it fall
// back to having no category.
func (h *Handler) DeleteCategory(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteCategory"))
	log.Debug(userCtx, logHandlerDeleteCategory)

	categoryID := ctx.Params("category_id")
	if categoryID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidCategoryID,
		})
	}

	if err := h.categoryUseCase.Delete(userCtx, categoryID, middleware.UserID(ctx)); err != nil {
		log.Debug(userCtx, "failed to delete category", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
