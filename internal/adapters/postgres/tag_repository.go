package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

// TagRepository implements repositories.TagRepository over Postgres.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// Create stores a new tag. No uniqueness is enforced on the name.
func (r *TagRepository) Create(ctx context.Context, ownerID, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Create"))
	log.Debug(ctx, "creating tag", zap.String("userID", ownerID), zap.String("name", name))

	var tag entities.Tag
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (user_id, name)
         VALUES ($1, $2)
         RETURNING id, user_id, name, created_at, updated_at`,
		ownerID, name,
	).Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		log.Error(ctx, "failed to create tag", zap.Error(err))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

// List returns the owner's tags sorted by name ascending.
func (r *TagRepository) List(ctx context.Context, ownerID string) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.List"))
	log.Debug(ctx, "listing tags", zap.String("userID", ownerID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, created_at, updated_at
         FROM tags
         WHERE user_id = $1
         ORDER BY name ASC`,
		ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to list tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*entities.Tag, 0)
	for rows.Next() {
		var tag entities.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			log.Error(ctx, "failed to scan tag", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return tags, nil
}

// Rename changes the tag's name where both id and owner match.
func (r *TagRepository) Rename(ctx context.Context, tagID, ownerID, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Rename"))
	log.Debug(ctx, "renaming tag", zap.String("tagID", tagID))

	if uuid.Validate(tagID) != nil {
		return nil, entities.ErrTagNotFound
	}

	var tag entities.Tag
	err := r.pool.QueryRow(ctx,
		`UPDATE tags
         SET name = $1, updated_at = now()
         WHERE id = $2 AND user_id = $3
         RETURNING id, user_id, name, created_at, updated_at`,
		name, tagID, ownerID,
	).Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "tag not found or not owned by user")
			return nil, entities.ErrTagNotFound
		}
		log.Error(ctx, "failed to rename tag", zap.Error(err))
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	return &tag, nil
}

// Delete removes the tag where both id and owner match; note_tags rows
// referencing it are removed by FK cascade.
func (r *TagRepository) Delete(ctx context.Context, tagID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Delete"))
	log.Debug(ctx, "deleting tag", zap.String("tagID", tagID))

	if uuid.Validate(tagID) != nil {
		return entities.ErrTagNotFound
	}

	result, err := r.pool.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`,
		tagID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete tag", zap.Error(err))
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "tag not found or not owned by user")
		return entities.ErrTagNotFound
	}
	return nil
}

// AllOwned reports whether every given tag id exists and belongs to
// the owner.
func (r *TagRepository) AllOwned(ctx context.Context, ownerID string, tagIDs []string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.AllOwned"))

	for _, id := range tagIDs {
		if uuid.Validate(id) != nil {
			return false, nil
		}
	}

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tags WHERE user_id = $1 AND id = ANY($2)`,
		ownerID, tagIDs,
	).Scan(&count)
	if err != nil {
		log.Error(ctx, "failed to check tag ownership", zap.Error(err))
		return false, fmt.Errorf("failed to check tag ownership: %w", err)
	}
	return count == len(uniqueIDs(tagIDs)), nil
}

// uniqueIDs deduplicates ids so the ownership count comparison holds
// when the client repeats a tag.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
