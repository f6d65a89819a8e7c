package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

// noteSelect is the base projection for note reads: the note row plus
// its category resolved via LEFT JOIN, so a deleted category reads as
// absent rather than erroring.
const noteSelect = `
        SELECT n.id, n.user_id, n.title, n.content, n.is_public, n.created_at, n.updated_at,
               c.id, c.user_id, c.name, c.created_at, c.updated_at
        FROM notes n
        LEFT JOIN categories c ON c.id = n.category_id`

const noteTagsSelect = `
        SELECT nt.note_id, t.id, t.user_id, t.name, t.created_at, t.updated_at
        FROM note_tags nt
        JOIN tags t ON t.id = nt.tag_id
        WHERE nt.note_id = ANY($1)
        ORDER BY t.name ASC`

// likeEscaper neutralizes LIKE wildcards in user-supplied search text
// so it matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NoteRepository implements repositories.NoteRepository over Postgres.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create stores the note and its tag references in one transaction and
// returns the note with references resolved.
func (r *NoteRepository) Create(ctx context.Context, ownerID string, change *repositories.NoteChange) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", ownerID))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var noteID string
	err = tx.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content, is_public, category_id)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		ownerID, change.Title, change.Content, change.IsPublic, change.CategoryID,
	).Scan(&noteID)
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	if err := insertNoteTags(ctx, tx, noteID, change.TagIDs); err != nil {
		log.Error(ctx, "failed to attach tags", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", noteID))
	return r.GetByID(ctx, noteID)
}

// GetByID fetches a note by id without owner scoping. Malformed ids
// read as not found instead of surfacing a syntax error.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	if uuid.Validate(noteID) != nil {
		log.Debug(ctx, "malformed note id", zap.String("noteID", noteID))
		return nil, entities.ErrNoteNotFound
	}

	row := r.pool.QueryRow(ctx, noteSelect+` WHERE n.id = $1`, noteID)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if err := r.attachTags(ctx, []*entities.Note{note}); err != nil {
		log.Error(ctx, "failed to load note tags", zap.Error(err))
		return nil, err
	}
	return note, nil
}

// List returns the owner's notes matching the filter, most recently
// updated first. The free-text filter matches title or content
// case-insensitively; tag and category filters narrow by intersection.
func (r *NoteRepository) List(ctx context.Context, ownerID string, filter *repositories.NoteFilter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes", zap.String("userID", ownerID))

	query := noteSelect + ` WHERE n.user_id = $1`
	args := []interface{}{ownerID}

	if filter.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Query)+"%")
		query += fmt.Sprintf(" AND (n.title ILIKE $%d OR n.content ILIKE $%d)", len(args), len(args))
	}
	if filter.TagID != "" {
		args = append(args, filter.TagID)
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = n.id AND nt.tag_id = $%d)", len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND n.category_id = $%d", len(args))
	}
	query += " ORDER BY n.updated_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if err := r.attachTags(ctx, notes); err != nil {
		log.Error(ctx, "failed to load note tags", zap.Error(err))
		return nil, err
	}
	return notes, nil
}

// Update replaces the note's fields where both id and owner match, in
// one transaction together with the tag reference rewrite. A note that
// is missing or owned by someone else yields entities.ErrNoteNotFound.
func (r *NoteRepository) Update(ctx context.Context, noteID, ownerID string, change *repositories.NoteChange) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", noteID))

	if uuid.Validate(noteID) != nil {
		return nil, entities.ErrNoteNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx,
		`UPDATE notes
         SET title = $1, content = $2, is_public = $3, category_id = $4, updated_at = now()
         WHERE id = $5 AND user_id = $6`,
		change.Title, change.Content, change.IsPublic, change.CategoryID, noteID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return nil, entities.ErrNoteNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1`, noteID); err != nil {
		log.Error(ctx, "failed to clear tag references", zap.Error(err))
		return nil, fmt.Errorf("failed to clear tag references: %w", err)
	}
	if err := insertNoteTags(ctx, tx, noteID, change.TagIDs); err != nil {
		log.Error(ctx, "failed to attach tags", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetByID(ctx, noteID)
}

// SetVisibility updates only the public flag, owner-scoped.
func (r *NoteRepository) SetVisibility(ctx context.Context, noteID, ownerID string, isPublic bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.SetVisibility"))
	log.Debug(ctx, "setting note visibility", zap.String("noteID", noteID), zap.Bool("isPublic", isPublic))

	if uuid.Validate(noteID) != nil {
		return nil, entities.ErrNoteNotFound
	}

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET is_public = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
		isPublic, noteID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to set note visibility", zap.Error(err))
		return nil, fmt.Errorf("failed to set note visibility: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return nil, entities.ErrNoteNotFound
	}

	return r.GetByID(ctx, noteID)
}

// Delete removes the note where both id and owner match. Join rows go
// with it via FK cascade; tags and categories stay.
func (r *NoteRepository) Delete(ctx context.Context, noteID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	if uuid.Validate(noteID) != nil {
		return entities.ErrNoteNotFound
	}

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}
	return nil
}

// attachTags loads the resolved tags for every note in one query.
func (r *NoteRepository) attachTags(ctx context.Context, notes []*entities.Note) error {
	if len(notes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(notes))
	byID := make(map[string]*entities.Note, len(notes))
	for _, note := range notes {
		note.Tags = make([]*entities.Tag, 0)
		ids = append(ids, note.ID)
		byID[note.ID] = note
	}

	rows, err := r.pool.Query(ctx, noteTagsSelect, ids)
	if err != nil {
		return fmt.Errorf("failed to load note tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID string
		var tag entities.Tag
		if err := rows.Scan(&noteID, &tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan note tag: %w", err)
		}
		if note, ok := byID[noteID]; ok {
			note.Tags = append(note.Tags, &tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating note tags: %w", err)
	}
	return nil
}

// insertNoteTags writes the join rows for the note's tag references.
func insertNoteTags(ctx context.Context, tx pgx.Tx, noteID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO note_tags (note_id, tag_id) VALUES ($1, $2)`,
			noteID, tagID,
		); err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, err)
		}
	}
	return nil
}

// scanNote reads one note row including the LEFT JOINed category
// columns, which are all NULL when the note has no category.
func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	var catID, catUserID, catName *string
	var catCreatedAt, catUpdatedAt *time.Time

	err := row.Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content, &note.IsPublic,
		&note.CreatedAt, &note.UpdatedAt,
		&catID, &catUserID, &catName, &catCreatedAt, &catUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil {
		note.Category = &entities.Category{
			ID:        *catID,
			UserID:    *catUserID,
			Name:      *catName,
			CreatedAt: *catCreatedAt,
			UpdatedAt: *catUpdatedAt,
		}
	}
	return &note, nil
}
