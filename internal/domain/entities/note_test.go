package entities_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/domain/entities"
)

func marshalKeys(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	return keys
}

func TestNoteJSONShape(t *testing.T) {
	now := time.Now()
	note := &entities.Note{
		ID:        "n1",
		UserID:    "u1",
		Title:     "t",
		IsPublic:  true,
		Tags:      []*entities.Tag{{ID: "t1", UserID: "u1", Name: "work"}},
		Category:  &entities.Category{ID: "c1", UserID: "u1", Name: "inbox"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	keys := marshalKeys(t, note)
	for _, key := range []string{"id", "userId", "title", "content", "isPublic", "tags", "category", "createdAt", "updatedAt"} {
		assert.Contains(t, keys, key)
	}
	for _, key := range []string{"user_id", "is_public", "created_at", "updated_at"} {
		assert.NotContains(t, keys, key)
	}

	assert.Equal(t, "true", string(keys["isPublic"]))
}

func TestTaxonomyJSONShape(t *testing.T) {
	tagKeys := marshalKeys(t, &entities.Tag{ID: "t1", UserID: "u1", Name: "work"})
	assert.Contains(t, tagKeys, "userId")
	assert.NotContains(t, tagKeys, "user_id")
	assert.NotContains(t, tagKeys, "created_at")

	categoryKeys := marshalKeys(t, &entities.Category{ID: "c1", UserID: "u1", Name: "inbox"})
	assert.Contains(t, categoryKeys, "updatedAt")
	assert.NotContains(t, categoryKeys, "updated_at")
}

func TestCategoryOmittedWhenDangling(t *testing.T) {
	keys := marshalKeys(t, &entities.Note{ID: "n1", Title: "t"})
	assert.NotContains(t, keys, "category")
}
