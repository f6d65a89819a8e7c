// Package postgres provides PostgreSQL implementations of the
// repository interfaces.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"notedeck/internal/ports/repositories"
)

// PgxPoolInterface is the subset of pgxpool.Pool the repositories use;
// it is what the mock pool implements in tests.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// RepositoryFactory builds every repository over one shared pool.
type RepositoryFactory struct {
	noteRepo     repositories.NoteRepository
	tagRepo      repositories.TagRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
	tokenRepo    repositories.TokenRepository
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		noteRepo:     NewNoteRepository(pool),
		tagRepo:      NewTagRepository(pool),
		categoryRepo: NewCategoryRepository(pool),
		userRepo:     NewUserRepository(pool),
		tokenRepo:    NewTokenRepository(pool),
	}
}

// NoteRepository returns the note repository.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return f.noteRepo
}

// TagRepository returns the tag repository.
func (f *RepositoryFactory) TagRepository() repositories.TagRepository {
	return f.tagRepo
}

// CategoryRepository returns the category repository.
func (f *RepositoryFactory) CategoryRepository() repositories.CategoryRepository {
	return f.categoryRepo
}

// UserRepository returns the user repository.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// TokenRepository returns the refresh token repository.
func (f *RepositoryFactory) TokenRepository() repositories.TokenRepository {
	return f.tokenRepo
}
