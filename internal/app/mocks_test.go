package app_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
)

type mockNoteRepo struct {
	mock.Mock
}

func (m *mockNoteRepo) Create(ctx context.Context, ownerID string, change *repositories.NoteChange) (*entities.Note, error) {
	args := m.Called(ctx, ownerID, change)
	if note := args.Get(0); note != nil {
		return note.(*entities.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if note := args.Get(0); note != nil {
		return note.(*entities.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) List(ctx context.Context, ownerID string, filter *repositories.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, ownerID, filter)
	if notes := args.Get(0); notes != nil {
		return notes.([]*entities.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) Update(ctx context.Context, noteID, ownerID string, change *repositories.NoteChange) (*entities.Note, error) {
	args := m.Called(ctx, noteID, ownerID, change)
	if note := args.Get(0); note != nil {
		return note.(*entities.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) SetVisibility(ctx context.Context, noteID, ownerID string, isPublic bool) (*entities.Note, error) {
	args := m.Called(ctx, noteID, ownerID, isPublic)
	if note := args.Get(0); note != nil {
		return note.(*entities.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) Delete(ctx context.Context, noteID, ownerID string) error {
	args := m.Called(ctx, noteID, ownerID)
	return args.Error(0)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) Create(ctx context.Context, ownerID, name string) (*entities.Tag, error) {
	args := m.Called(ctx, ownerID, name)
	if tag := args.Get(0); tag != nil {
		return tag.(*entities.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) List(ctx context.Context, ownerID string) ([]*entities.Tag, error) {
	args := m.Called(ctx, ownerID)
	if tags := args.Get(0); tags != nil {
		return tags.([]*entities.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) Rename(ctx context.Context, tagID, ownerID, name string) (*entities.Tag, error) {
	args := m.Called(ctx, tagID, ownerID, name)
	if tag := args.Get(0); tag != nil {
		return tag.(*entities.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) Delete(ctx context.Context, tagID, ownerID string) error {
	args := m.Called(ctx, tagID, ownerID)
	return args.Error(0)
}

func (m *mockTagRepo) AllOwned(ctx context.Context, ownerID string, tagIDs []string) (bool, error) {
	args := m.Called(ctx, ownerID, tagIDs)
	return args.Bool(0), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, ownerID, name string) (*entities.Category, error) {
	args := m.Called(ctx, ownerID, name)
	if category := args.Get(0); category != nil {
		return category.(*entities.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context, ownerID string) ([]*entities.Category, error) {
	args := m.Called(ctx, ownerID)
	if categories := args.Get(0); categories != nil {
		return categories.([]*entities.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Rename(ctx context.Context, categoryID, ownerID, name string) (*entities.Category, error) {
	args := m.Called(ctx, categoryID, ownerID, name)
	if category := args.Get(0); category != nil {
		return category.(*entities.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, categoryID, ownerID string) error {
	args := m.Called(ctx, categoryID, ownerID)
	return args.Error(0)
}

func (m *mockCategoryRepo) Owned(ctx context.Context, ownerID, categoryID string) (bool, error) {
	args := m.Called(ctx, ownerID, categoryID)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if created := args.Get(0); created != nil {
		return created.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Store(ctx context.Context, token *entities.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepo) FindByToken(ctx context.Context, token string) (*entities.RefreshToken, error) {
	args := m.Called(ctx, token)
	if stored := args.Get(0); stored != nil {
		return stored.(*entities.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenRepo) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, hash, password string) (bool, error) {
	args := m.Called(ctx, hash, password)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, username string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, username, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateRefreshToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// memoryCache is an in-process cache.Cache used to observe what the
// use case reads, writes, and drops.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *memoryCache) Close() error {
	return nil
}
