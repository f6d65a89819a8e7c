package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

const (
	msgErrListCategories = "failed to list categories"
	msgErrCreateCategory = "failed to create category"
	msgErrRenameCategory = "failed to rename category"
	msgErrDeleteCategory = "failed to delete category"
)

// CategoryUseCase implements the category operations.
type CategoryUseCase struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo repositories.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// List returns the owner's categories sorted by name.
func (uc *CategoryUseCase) List(ctx context.Context, ownerID string) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryUseCase.List"))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}

	categories, err := uc.categoryRepo.List(ctx, ownerID)
	if err != nil {
		log.Error(ctx, msgErrListCategories, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrListCategories, err)
	}
	return categories, nil
}

// Create stores a new category; the name must be non-blank after
// trimming.
func (uc *CategoryUseCase) Create(ctx context.Context, ownerID, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryUseCase.Create"))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.ErrCategoryNameRequired
	}

	category, err := uc.categoryRepo.Create(ctx, ownerID, name)
	if err != nil {
		log.Error(ctx, msgErrCreateCategory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrCreateCategory, err)
	}

	log.Debug(ctx, "category created", zap.String("categoryID", category.ID))
	return category, nil
}

// Rename changes the category's name in one owner-scoped query.
func (uc *CategoryUseCase) Rename(ctx context.Context, categoryID, ownerID, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryUseCase.Rename"))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.ErrCategoryNameRequired
	}

	category, err := uc.categoryRepo.Rename(ctx, categoryID, ownerID, name)
	if err != nil {
		log.Error(ctx, msgErrRenameCategory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrRenameCategory, err)
	}
	return category, nil
}

// Delete removes the category. Notes referencing it survive with the
// reference cleared.
func (uc *CategoryUseCase) Delete(ctx context.Context, categoryID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryUseCase.Delete"))

	if ownerID == "" {
		return ErrUnauthorized
	}

	if err := uc.categoryRepo.Delete(ctx, categoryID, ownerID); err != nil {
		log.Error(ctx, msgErrDeleteCategory, zap.Error(err))
		return fmt.Errorf("%s: %w", msgErrDeleteCategory, err)
	}
	return nil
}
