package preferences_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/editor/preferences"
)

func writePrefs(t *testing.T, dir string, prefs preferences.Preferences) {
	t.Helper()
	raw, err := json.Marshal(prefs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, preferences.FileName), raw, 0o644))
}

func TestStoreDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields defaults", func(t *testing.T) {
		store, err := preferences.NewStore(ctx, t.TempDir())
		require.NoError(t, err)

		prefs := store.Current()
		assert.True(t, prefs.Autosave)
		assert.False(t, prefs.PublicByDefault)
	})

	t.Run("existing file is loaded at startup", func(t *testing.T) {
		dir := t.TempDir()
		writePrefs(t, dir, preferences.Preferences{Autosave: false, PublicByDefault: true})

		store, err := preferences.NewStore(ctx, dir)
		require.NoError(t, err)

		prefs := store.Current()
		assert.False(t, prefs.Autosave)
		assert.True(t, prefs.PublicByDefault)
	})

	t.Run("malformed file fails loudly", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, preferences.FileName), []byte("{broken"), 0o644))

		_, err := preferences.NewStore(ctx, dir)
		assert.Error(t, err)
	})
}

func TestStoreSave(t *testing.T) {
	ctx := context.Background()

	t.Run("save persists and updates the current value", func(t *testing.T) {
		dir := t.TempDir()
		store, err := preferences.NewStore(ctx, dir)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, preferences.Preferences{Autosave: false, PublicByDefault: true}))

		assert.False(t, store.Current().Autosave)

		reloaded, err := preferences.NewStore(ctx, dir)
		require.NoError(t, err)
		assert.True(t, reloaded.Current().PublicByDefault)
	})
}

func TestStoreWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("external rewrite is picked up", func(t *testing.T) {
		dir := t.TempDir()
		store, err := preferences.NewStore(ctx, dir)
		require.NoError(t, err)

		require.NoError(t, store.Watch(ctx))
		defer func() { _ = store.Close() }()

		writePrefs(t, dir, preferences.Preferences{Autosave: false, PublicByDefault: true})

		assert.Eventually(t, func() bool {
			return !store.Current().Autosave
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("unrelated files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		store, err := preferences.NewStore(ctx, dir)
		require.NoError(t, err)

		require.NoError(t, store.Watch(ctx))
		defer func() { _ = store.Close() }()

		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{"autosave":false}`), 0o644))

		time.Sleep(100 * time.Millisecond)
		assert.True(t, store.Current().Autosave)
	})
}
