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
	msgErrListTags  = "failed to list tags"
	msgErrCreateTag = "failed to create tag"
	msgErrRenameTag = "failed to rename tag"
	msgErrDeleteTag = "failed to delete tag"
)

// TagUseCase implements the tag operations. Duplicate names per owner
// are allowed.
type TagUseCase struct {
	tagRepo repositories.TagRepository
}

// NewTagUseCase creates a new TagUseCase.
func NewTagUseCase(tagRepo repositories.TagRepository) *TagUseCase {
	return &TagUseCase{tagRepo: tagRepo}
}

// List returns the owner's tags sorted by name.
func (uc *TagUseCase) List(ctx context.Context, ownerID string) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.List"))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}

	tags, err := uc.tagRepo.List(ctx, ownerID)
	if err != nil {
		log.Error(ctx, msgErrListTags, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrListTags, err)
	}
	return tags, nil
}

// Create stores a new tag; the name must be non-blank after trimming.
func (uc *TagUseCase) Create(ctx context.Context, ownerID, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.Create"))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.ErrTagNameRequired
	}

	tag, err := uc.tagRepo.Create(ctx, ownerID, name)
	if err != nil {
		log.Error(ctx, msgErrCreateTag, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrCreateTag, err)
	}

	log.Debug(ctx, "tag created", zap.String("tagID", tag.ID))
	return tag, nil
}

// Rename changes the tag's name in one owner-scoped query.
func (uc *TagUseCase) Rename(ctx context.Context, tagID, ownerID, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.Rename"))

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.ErrTagNameRequired
	}

	tag, err := uc.tagRepo.Rename(ctx, tagID, ownerID, name)
	if err != nil {
		log.Error(ctx, msgErrRenameTag, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgErrRenameTag, err)
	}
	return tag, nil
}

// Delete removes the tag. Notes referencing it are not touched; their
// read-back simply omits the deleted tag.
func (uc *TagUseCase) Delete(ctx context.Context, tagID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.Delete"))

	if ownerID == "" {
		return ErrUnauthorized
	}

	if err := uc.tagRepo.Delete(ctx, tagID, ownerID); err != nil {
		log.Error(ctx, msgErrDeleteTag, zap.Error(err))
		return fmt.Errorf("%s: %w", msgErrDeleteTag, err)
	}
	return nil
}
