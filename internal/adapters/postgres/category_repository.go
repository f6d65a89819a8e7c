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

// CategoryRepository implements repositories.CategoryRepository over
// Postgres.
type CategoryRepository struct {
	pool PgxPoolInterface
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(pool PgxPoolInterface) repositories.CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create stores a new category. No uniqueness is enforced on the name.
func (r *CategoryRepository) Create(ctx context.Context, ownerID, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Create"))
	log.Debug(ctx, "creating category", zap.String("userID", ownerID), zap.String("name", name))

	var category entities.Category
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (user_id, name)
         VALUES ($1, $2)
         RETURNING id, user_id, name, created_at, updated_at`,
		ownerID, name,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		log.Error(ctx, "failed to create category", zap.Error(err))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// List returns the owner's categories sorted by name ascending.
func (r *CategoryRepository) List(ctx context.Context, ownerID string) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.List"))
	log.Debug(ctx, "listing categories", zap.String("userID", ownerID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, created_at, updated_at
         FROM categories
         WHERE user_id = $1
         ORDER BY name ASC`,
		ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*entities.Category, 0)
	for rows.Next() {
		var category entities.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			log.Error(ctx, "failed to scan category", zap.Error(err))
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return categories, nil
}

// Rename changes the category's name where both id and owner match.
func (r *CategoryRepository) Rename(ctx context.Context, categoryID, ownerID, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Rename"))
	log.Debug(ctx, "renaming category", zap.String("categoryID", categoryID))

	if uuid.Validate(categoryID) != nil {
		return nil, entities.ErrCategoryNotFound
	}

	var category entities.Category
	err := r.pool.QueryRow(ctx,
		`UPDATE categories
         SET name = $1, updated_at = now()
         WHERE id = $2 AND user_id = $3
         RETURNING id, user_id, name, created_at, updated_at`,
		name, categoryID, ownerID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "category not found or not owned by user")
			return nil, entities.ErrCategoryNotFound
		}
		log.Error(ctx, "failed to rename category", zap.Error(err))
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}
	return &category, nil
}

// Delete removes the category where both id and owner match; notes
// referencing it get their category cleared by the FK action.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Delete"))
	log.Debug(ctx, "deleting category", zap.String("categoryID", categoryID))

	if uuid.Validate(categoryID) != nil {
		return entities.ErrCategoryNotFound
	}

	result, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete category", zap.Error(err))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "category not found or not owned by user")
		return entities.ErrCategoryNotFound
	}
	return nil
}

// Owned reports whether the category exists and belongs to the owner.
func (r *CategoryRepository) Owned(ctx context.Context, ownerID, categoryID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Owned"))

	if uuid.Validate(categoryID) != nil {
		return false, nil
	}

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, ownerID,
	).Scan(&exists)
	if err != nil {
		log.Error(ctx, "failed to check category ownership", zap.Error(err))
		return false, fmt.Errorf("failed to check category ownership: %w", err)
	}
	return exists, nil
}
