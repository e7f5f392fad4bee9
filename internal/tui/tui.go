// Package tui renders the terminal user interface of the notka client: the
// sign-in flow and the note dashboard. All server I/O goes through the
// adapter interfaces and runs as asynchronous Bubble Tea commands; the note
// cache and the editing surfaces are owned by [editor.State].
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avoronov/notka/internal/adapter"
	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/internal/store"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	auth   adapter.AuthAdapter
	notes  adapter.NotesAdapter
	tokens store.TokenStore
	log    *logger.Logger
}

func New(auth adapter.AuthAdapter, notes adapter.NotesAdapter, tokens store.TokenStore, log *logger.Logger) *TUI {
	return &TUI{auth: auth, notes: notes, tokens: tokens, log: log}
}

// LoginFlow runs the sign-in and registration screens until the user is
// authenticated. On success the bearer token has been persisted and the
// signed-in username is returned. A user-initiated exit returns
// [ErrUserQuit].
func (t *TUI) LoginFlow(ctx context.Context) (username string, err error) {
	model := newLoginAppModel(ctx, t.auth, t.notes, t.tokens)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return "", runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.err != nil {
		return "", result.err
	}

	t.log.Info().Str("username", result.resultUsername).Msg("user signed in")
	return result.resultUsername, nil
}

// MainLoop runs the note dashboard. It returns logout=true when the user
// logged out explicitly or when the server ended the session with a 401.
func (t *TUI) MainLoop(ctx context.Context, username string) (logout bool, err error) {
	model := newMainAppModel(ctx, t.auth, t.notes, t.tokens, username)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
