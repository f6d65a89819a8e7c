// Package preferences stores the per-user editor preferences as a
// small JSON file and picks up external changes to it.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"notedeck/pkg/logger"
)

// FileName is the fixed name of the preferences file inside the
// configured directory.
const FileName = "preferences.json"

const (
	msgLoadedPrefs   = "loaded editor preferences"
	msgReloadedPrefs = "reloaded editor preferences after file change"
	msgErrReadPrefs  = "failed to read preferences file"
	msgErrParsePrefs = "failed to parse preferences file"
	msgErrWatchPrefs = "preferences watcher error"
	msgErrWritePrefs = "failed to write preferences file"
)

// Preferences holds the editor settings.
type Preferences struct {
	Autosave        bool `json:"autosave"`
	PublicByDefault bool `json:"publicByDefault"`
}

// Defaults returns the settings used when no file exists yet.
func Defaults() Preferences {
	return Preferences{Autosave: true, PublicByDefault: false}
}

// Store loads preferences from disk and serves the latest value. When
// watching is enabled, external edits to the file are picked up
// without a restart.
type Store struct {
	mu      sync.RWMutex
	path    string
	current Preferences
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore reads the preferences file under dir, falling back to
// defaults when it does not exist.
func NewStore(ctx context.Context, dir string) (*Store, error) {
	store := &Store{
		path:    filepath.Join(dir, FileName),
		current: Defaults(),
	}
	if err := store.load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Current returns the latest known preferences.
func (s *Store) Current() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save persists the given preferences and makes them current.
func (s *Store) Save(ctx context.Context, prefs Preferences) error {
	log := logger.Log(ctx).With(zap.String("method", "Store.Save"))

	raw, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", msgErrWritePrefs, err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		log.Error(ctx, msgErrWritePrefs, zap.Error(err))
		return fmt.Errorf("%s: %w", msgErrWritePrefs, err)
	}

	s.mu.Lock()
	s.current = prefs
	s.mu.Unlock()
	return nil
}

// Watch starts watching the preferences file for external changes and
// reloads it when it is rewritten.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating preferences watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			return errors.Join(fmt.Errorf("watching preferences dir: %w", err), closeErr)
		}
		return fmt.Errorf("watching preferences dir: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go s.watchLoop(ctx)
	return nil
}

// Close stops the watcher if one is running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	<-s.done
	return err
}

func (s *Store) watchLoop(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("method", "Store.watchLoop"))
	defer close(s.done)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := s.load(ctx); err != nil {
				log.Warn(ctx, msgErrReadPrefs, zap.Error(err))
				continue
			}
			log.Debug(ctx, msgReloadedPrefs)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Warn(ctx, msgErrWatchPrefs, zap.Error(err))

		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) load(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", "Store.load"))

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug(ctx, "no preferences file, using defaults", zap.String("path", s.path))
			return nil
		}
		return fmt.Errorf("%s: %w", msgErrReadPrefs, err)
	}

	prefs := Defaults()
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return fmt.Errorf("%s: %w", msgErrParsePrefs, err)
	}

	s.mu.Lock()
	s.current = prefs
	s.mu.Unlock()

	log.Debug(ctx, msgLoadedPrefs, zap.Bool("autosave", prefs.Autosave), zap.Bool("publicByDefault", prefs.PublicByDefault))
	return nil
}
