// Package main is a terminal editing client. It opens one note (or a
// new one), applies typed lines to the draft, and saves through the
// same use cases as the server, with autosave driven by the editor
// preferences file.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	adapterpg "notedeck/internal/adapters/postgres"
	"notedeck/internal/app"
	"notedeck/internal/config"
	"notedeck/internal/editor"
	"notedeck/internal/editor/preferences"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/db/postgres"
	"notedeck/pkg/logger"
)

const (
	envLoggerMode  = "NOTEDECK_LOGGER_MODE"
	envLoggerLevel = "NOTEDECK_LOGGER_LEVEL"
	envEditorDir   = "NOTEDECK_EDITOR_DIR"

	usage = "usage: notedeck-edit <owner_id> [note_id]"
)

const (
	errInitLogger      = "failed to initialize logger"
	errLoadConfig      = "failed to load configuration"
	errInitDB          = "failed to initialize database"
	errLoadPreferences = "failed to load editor preferences"
	errLoadNote        = "failed to load note"
	errReadInput       = "failed to read input"
	errSaveNote        = "failed to save note"
)

const (
	cmdTitle   = ":title"
	cmdPublic  = ":public"
	cmdPrivate = ":private"
	cmdSave    = ":save"
	cmdQuit    = ":quit"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	ownerID := os.Args[1]
	noteID := ""
	if len(os.Args) == 3 {
		noteID = os.Args[2]
	}

	env := logger.Development
	if strings.ToLower(os.Getenv(envLoggerMode)) == "production" {
		env = logger.Production
	}
	log, err := logger.NewLogger(env, os.Getenv(envLoggerLevel))
	if err != nil {
		panic(errInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	if err := run(ctx, ownerID, noteID); err != nil {
		log.Error(ctx, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, ownerID, noteID string) error {
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errLoadConfig, err)
	}

	prefsDir := os.Getenv(envEditorDir)
	if prefsDir == "" {
		prefsDir = "."
	}
	prefs, err := preferences.NewStore(ctx, prefsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", errLoadPreferences, err)
	}
	if err := prefs.Watch(ctx); err != nil {
		return fmt.Errorf("%s: %w", errLoadPreferences, err)
	}
	defer func() { _ = prefs.Close() }()

	// The server owns migrations; the client only connects.
	connector := postgres.NewLazy(
		cfg.Postgres.GetConnectionURL(),
		cfg.Postgres.MinConn,
		cfg.Postgres.MaxConn,
		"",
	)
	database, err := connector.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errInitDB, err)
	}
	defer connector.Close(ctx)

	repoFactory := adapterpg.NewRepositoryFactory(database.Pool())
	noteUseCase := app.NewNoteUseCase(
		repoFactory.NoteRepository(),
		repoFactory.TagRepository(),
		repoFactory.CategoryRepository(),
		nil,
		0,
	)

	current := prefs.Current()
	opts := []editor.Option{
		editor.WithAutosave(current.Autosave),
		editor.WithOnSaved(func(id string) {
			fmt.Printf("saved as %s\n", id)
		}),
	}

	saver := editor.NewSaver(noteUseCase, ownerID)
	var session *editor.Session
	if noteID != "" {
		note, err := noteUseCase.GetForViewer(ctx, noteID, ownerID)
		if err != nil {
			return fmt.Errorf("%s: %w", errLoadNote, err)
		}
		session = editor.NewSessionFor(note, saver, opts...)
	} else {
		session = editor.NewSession(saver, opts...)
		if current.PublicByDefault {
			session.Edit(ctx, func(draft *repositories.NoteChange) { draft.IsPublic = true })
		}
	}
	defer session.Close()

	if err := editLoop(ctx, session, os.Stdin); err != nil {
		return err
	}

	if _, err := session.Save(ctx); err != nil {
		return fmt.Errorf("%s: %w", errSaveNote, err)
	}
	log.Info(ctx, "editing session finished", zap.String("noteID", session.NoteID()))
	return nil
}

// editLoop applies stdin to the session until EOF or :quit. Plain
// lines append to the content; colon commands control the session.
func editLoop(ctx context.Context, session *editor.Session, in *os.File) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, cmdTitle):
			title := strings.TrimSpace(strings.TrimPrefix(line, cmdTitle))
			session.Edit(ctx, func(draft *repositories.NoteChange) { draft.Title = title })
		case line == cmdPublic, line == cmdPrivate:
			if _, err := session.SetVisibility(ctx, line == cmdPublic); err != nil {
				fmt.Fprintf(os.Stderr, "visibility not changed: %v\n", err)
			}
		case line == cmdSave:
			if _, err := session.Save(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", errSaveNote, err)
			}
		case line == cmdQuit:
			return nil
		default:
			session.Edit(ctx, func(draft *repositories.NoteChange) {
				if draft.Content != "" {
					draft.Content += "\n"
				}
				draft.Content += line
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", errReadInput, err)
	}
	return nil
}
