package editor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/domain/entities"
	"notedeck/internal/editor"
	"notedeck/internal/ports/repositories"
)

const persistedNoteID = "33333333-3333-3333-3333-333333333333"

// fakeClock fires AfterFunc callbacks synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) editor.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.deadline.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	for _, timer := range due {
		timer.f()
	}
}

// fakeSaver records calls and can be told to fail.
type fakeSaver struct {
	mu         sync.Mutex
	creates    int
	updates    int
	visibility int
	failNext   error
	updateHook func()
}

func (s *fakeSaver) Create(_ context.Context, change *repositories.NoteChange) (*entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	s.creates++
	return &entities.Note{ID: persistedNoteID, Title: change.Title, Content: change.Content, IsPublic: change.IsPublic}, nil
}

func (s *fakeSaver) Update(_ context.Context, noteID string, change *repositories.NoteChange) (*entities.Note, error) {
	s.mu.Lock()
	hook := s.updateHook
	s.updateHook = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	s.updates++
	return &entities.Note{ID: noteID, Title: change.Title, Content: change.Content, IsPublic: change.IsPublic}, nil
}

func (s *fakeSaver) SetVisibility(_ context.Context, noteID string, isPublic bool) (*entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	s.visibility++
	return &entities.Note{ID: noteID, IsPublic: isPublic}, nil
}

func (s *fakeSaver) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *fakeSaver) counts() (creates, updates, visibility int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.updates, s.visibility
}

func existingNote() *entities.Note {
	return &entities.Note{ID: persistedNoteID, Title: "title", Content: "content"}
}

func TestSessionAutosave(t *testing.T) {
	ctx := context.Background()

	t.Run("debounce elapses and saves once", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(clock))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "typed" })
		assert.Equal(t, editor.StateDirty, session.State())

		clock.Advance(editor.DefaultDebounce)

		_, updates, _ := saver.counts()
		assert.Equal(t, 1, updates)
		assert.Equal(t, editor.StateClean, session.State())
	})

	t.Run("each edit restarts the debounce", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(clock))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "a" })
		clock.Advance(editor.DefaultDebounce / 2)

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "ab" })
		clock.Advance(editor.DefaultDebounce / 2)

		_, updates, _ := saver.counts()
		assert.Zero(t, updates, "no save while typing continues")

		clock.Advance(editor.DefaultDebounce / 2)

		_, updates, _ = saver.counts()
		assert.Equal(t, 1, updates)
		assert.Equal(t, "ab", session.Draft().Content)
	})

	t.Run("autosave disabled waits for an explicit save", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(clock), editor.WithAutosave(false))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "typed" })
		clock.Advance(10 * editor.DefaultDebounce)

		_, updates, _ := saver.counts()
		assert.Zero(t, updates)
		assert.Equal(t, editor.StateDirty, session.State())
	})

	t.Run("new note is never autosaved", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSession(saver, editor.WithClock(clock))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Title = "fresh" })
		clock.Advance(10 * editor.DefaultDebounce)

		creates, updates, _ := saver.counts()
		assert.Zero(t, creates)
		assert.Zero(t, updates)
	})

	t.Run("edit during an in-flight save leaves the session dirty", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(clock))

		saver.updateHook = func() {
			session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "newer" })
		}

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "older" })
		clock.Advance(editor.DefaultDebounce)

		assert.Equal(t, editor.StateDirty, session.State())
		assert.Equal(t, "newer", session.Draft().Content)
	})
}

func TestSessionSave(t *testing.T) {
	ctx := context.Background()

	t.Run("first save of a new note assigns the id and navigates", func(t *testing.T) {
		saver := &fakeSaver{}
		var navigatedTo string
		var wg sync.WaitGroup
		wg.Add(1)

		session := editor.NewSession(saver,
			editor.WithClock(newFakeClock()),
			editor.WithOnSaved(func(noteID string) {
				navigatedTo = noteID
				wg.Done()
			}),
		)

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Title = "fresh" })

		note, err := session.Save(ctx)
		require.NoError(t, err)
		wg.Wait()

		assert.Equal(t, persistedNoteID, note.ID)
		assert.Equal(t, persistedNoteID, session.NoteID())
		assert.Equal(t, persistedNoteID, navigatedTo)
	})

	t.Run("manual save cancels the pending autosave", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(clock))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "typed" })

		_, err := session.Save(ctx)
		require.NoError(t, err)

		clock.Advance(10 * editor.DefaultDebounce)

		_, updates, _ := saver.counts()
		assert.Equal(t, 1, updates, "the debounced save must not fire after a manual one")
	})

	t.Run("clean session saves nothing", func(t *testing.T) {
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(newFakeClock()))

		note, err := session.Save(ctx)
		require.NoError(t, err)
		assert.Nil(t, note)

		_, updates, _ := saver.counts()
		assert.Zero(t, updates)
	})

	t.Run("failed save keeps the edits", func(t *testing.T) {
		saver := &fakeSaver{failNext: errors.New("server unavailable")}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(newFakeClock()))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "precious" })

		_, err := session.Save(ctx)
		require.Error(t, err)

		assert.Equal(t, editor.StateSaveFailed, session.State())
		assert.Equal(t, "precious", session.Draft().Content)
	})
}

func TestSessionSetVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("visibility saves alone without touching the draft", func(t *testing.T) {
		clock := newFakeClock()
		saver := &fakeSaver{}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(clock))

		session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Content = "unsaved" })

		note, err := session.SetVisibility(ctx, true)
		require.NoError(t, err)
		assert.True(t, note.IsPublic)

		_, updates, visibility := saver.counts()
		assert.Zero(t, updates, "the dirty draft must not ride along")
		assert.Equal(t, 1, visibility)
		assert.Equal(t, "unsaved", session.Draft().Content)
		assert.Equal(t, editor.StateDirty, session.State())
	})

	t.Run("failure reverts the local flag", func(t *testing.T) {
		saver := &fakeSaver{failNext: errors.New("server unavailable")}
		session := editor.NewSessionFor(existingNote(), saver, editor.WithClock(newFakeClock()))

		_, err := session.SetVisibility(ctx, true)
		require.Error(t, err)

		assert.False(t, session.Draft().IsPublic)
	})

	t.Run("unsaved note only flips the local flag", func(t *testing.T) {
		saver := &fakeSaver{}
		session := editor.NewSession(saver, editor.WithClock(newFakeClock()))

		note, err := session.SetVisibility(ctx, true)
		require.NoError(t, err)
		assert.Nil(t, note)

		_, _, visibility := saver.counts()
		assert.Zero(t, visibility)
		assert.True(t, session.Draft().IsPublic)
	})
}
