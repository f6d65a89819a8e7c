// Package editor implements the note editing session: it tracks local
// edits, debounces autosaves, and keeps the visibility toggle isolated
// from the rest of the draft.
package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

// State describes where a session stands relative to the server copy.
type State int

const (
	// StateClean means the draft matches the last saved copy.
	StateClean State = iota
	// StateDirty means the draft has unsaved edits.
	StateDirty
	// StateSaving means a save request is in flight.
	StateSaving
	// StateSaveFailed means the last save failed; the edits are kept.
	StateSaveFailed
)

// DefaultDebounce is how long the session waits after the last
// keystroke before autosaving.
const DefaultDebounce = 2 * time.Second

const (
	msgAutosaveFired    = "autosave debounce fired"
	msgSavingDraft      = "saving draft"
	msgDraftSaved       = "draft saved"
	msgErrSaveDraft     = "failed to save draft"
	msgErrSetVisibility = "failed to change visibility"
)

// Saver is the slice of the note API the session needs.
type Saver interface {
	Create(ctx context.Context, change *repositories.NoteChange) (*entities.Note, error)
	Update(ctx context.Context, noteID string, change *repositories.NoteChange) (*entities.Note, error)
	SetVisibility(ctx context.Context, noteID string, isPublic bool) (*entities.Note, error)
}

// Session is a single note editing session. All methods are safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	saver    Saver
	clock    Clock
	debounce time.Duration
	autosave bool
	onSaved  func(noteID string)

	noteID string
	draft  repositories.NoteChange
	state  State
	timer  Timer

	// gen invalidates debounce timers and in-flight saves that were
	// started before a newer edit.
	gen int
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the wall clock.
func WithClock(clock Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithDebounce overrides the autosave debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithAutosave enables or disables debounced autosaving.
func WithAutosave(enabled bool) Option {
	return func(s *Session) { s.autosave = enabled }
}

// WithOnSaved registers a callback invoked after a new note is
// persisted for the first time, carrying its assigned id.
func WithOnSaved(fn func(noteID string)) Option {
	return func(s *Session) { s.onSaved = fn }
}

// NewSession starts an editing session for a brand new note.
func NewSession(saver Saver, opts ...Option) *Session {
	s := &Session{
		saver:    saver,
		clock:    NewClock(),
		debounce: DefaultDebounce,
		autosave: true,
		state:    StateClean,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionFor starts an editing session seeded from an existing
// note.
func NewSessionFor(note *entities.Note, saver Saver, opts ...Option) *Session {
	s := NewSession(saver, opts...)
	s.noteID = note.ID
	s.draft = changeFrom(note)
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() repositories.NoteChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyChange(s.draft)
}

// NoteID returns the persisted note id, or an empty string while the
// note only exists locally.
func (s *Session) NoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noteID
}

// Edit applies a mutation to the draft, marks the session dirty, and
// restarts the autosave debounce. Notes that were never saved are not
// autosaved; they wait for an explicit Save.
func (s *Session) Edit(ctx context.Context, mutate func(draft *repositories.NoteChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.draft)
	s.state = StateDirty
	s.gen++

	s.stopTimerLocked()
	if !s.autosave || s.noteID == "" {
		return
	}

	gen := s.gen
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		s.autosaveFire(ctx, gen)
	})
}

// Save persists the draft immediately, cancelling any pending
// autosave. The first save of a new note assigns its id and triggers
// the onSaved callback.
func (s *Session) Save(ctx context.Context) (*entities.Note, error) {
	s.mu.Lock()
	s.stopTimerLocked()
	gen := s.gen
	s.mu.Unlock()

	return s.save(ctx, gen)
}

// SetVisibility persists only the public flag. The rest of the draft,
// saved or not, is untouched; on failure the local flag reverts to its
// previous value so the toggle reflects the server state.
func (s *Session) SetVisibility(ctx context.Context, isPublic bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "Session.SetVisibility"))

	s.mu.Lock()
	noteID := s.noteID
	prev := s.draft.IsPublic
	s.draft.IsPublic = isPublic
	s.mu.Unlock()

	if noteID == "" {
		// Nothing persisted yet; the flag rides along with the first
		// save.
		return nil, nil
	}

	note, err := s.saver.SetVisibility(ctx, noteID, isPublic)
	if err != nil {
		log.Warn(ctx, msgErrSetVisibility, zap.Error(err))
		s.mu.Lock()
		s.draft.IsPublic = prev
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", msgErrSetVisibility, err)
	}
	return note, nil
}

// autosaveFire runs when the debounce elapses. A timer made stale by a
// newer edit or an explicit save does nothing.
func (s *Session) autosaveFire(ctx context.Context, gen int) {
	log := logger.Log(ctx).With(zap.String("method", "Session.autosaveFire"))

	s.mu.Lock()
	if gen != s.gen || s.state != StateDirty {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	log.Debug(ctx, msgAutosaveFired)
	if _, err := s.save(ctx, gen); err != nil {
		log.Warn(ctx, msgErrSaveDraft, zap.Error(err))
	}
}

func (s *Session) save(ctx context.Context, gen int) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "Session.save"))

	s.mu.Lock()
	if s.state == StateClean {
		s.mu.Unlock()
		return nil, nil
	}
	s.state = StateSaving
	noteID := s.noteID
	draft := copyChange(s.draft)
	s.mu.Unlock()

	log.Debug(ctx, msgSavingDraft, zap.String("noteID", noteID))

	var (
		note *entities.Note
		err  error
	)
	if noteID == "" {
		note, err = s.saver.Create(ctx, &draft)
	} else {
		note, err = s.saver.Update(ctx, noteID, &draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// The draft stays as typed so nothing is lost.
		s.state = StateSaveFailed
		return nil, fmt.Errorf("%s: %w", msgErrSaveDraft, err)
	}

	created := noteID == "" && note != nil
	if created {
		s.noteID = note.ID
	}

	if gen == s.gen {
		s.state = StateClean
	} else {
		// Edits arrived while the request was in flight.
		s.state = StateDirty
	}

	if created && s.onSaved != nil {
		go s.onSaved(note.ID)
	}

	log.Debug(ctx, msgDraftSaved, zap.String("noteID", s.noteID))
	return note, nil
}

// Close cancels any pending autosave without saving.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func changeFrom(note *entities.Note) repositories.NoteChange {
	change := repositories.NoteChange{
		Title:    note.Title,
		Content:  note.Content,
		IsPublic: note.IsPublic,
	}
	for _, tag := range note.Tags {
		change.TagIDs = append(change.TagIDs, tag.ID)
	}
	if note.Category != nil {
		id := note.Category.ID
		change.CategoryID = &id
	}
	return change
}

func copyChange(change repositories.NoteChange) repositories.NoteChange {
	out := change
	out.TagIDs = append([]string(nil), change.TagIDs...)
	if change.CategoryID != nil {
		id := *change.CategoryID
		out.CategoryID = &id
	}
	return out
}
