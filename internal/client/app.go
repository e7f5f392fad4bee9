// Package client assembles the notka client application: configuration,
// durable session store, transport adapters and the terminal UI.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoronov/notka/internal/adapter"
	"github.com/avoronov/notka/internal/config"
	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/internal/store"
	"github.com/avoronov/notka/internal/tui"
)

type App struct {
	log    *logger.Logger
	db     *store.DB
	tokens store.TokenStore
	auth   adapter.AuthAdapter
	notes  adapter.NotesAdapter
	ui     *tui.TUI
}

func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := store.OpenDB(cfg.Storage.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	tokens := store.NewTokenStore(db, log)

	auth, err := adapter.NewHTTPAuthAdapter(cfg.Services.AuthAddress, cfg.Services.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("create auth adapter: %w", err)
	}

	notes, err := adapter.NewHTTPNotesAdapter(cfg.Services.NotesAddress, cfg.Services.RequestTimeout, tokens, func() {
		log.Warn().Msg("session expired, stored token cleared")
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create notes adapter: %w", err)
	}

	ui := tui.New(auth, notes, tokens, log)

	return &App{
		log:    log,
		db:     db,
		tokens: tokens,
		auth:   auth,
		notes:  notes,
		ui:     ui,
	}, nil
}

// Run drives the session loop: restore or establish a session, enter the
// dashboard, and on logout (explicit or server-forced) come back to the
// sign-in flow. Returns nil when the user quits.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		username, err := a.restoreSession(ctx)
		if err != nil {
			if !errors.Is(err, store.ErrNoToken) {
				return fmt.Errorf("restore session: %w", err)
			}
			username, err = a.ui.LoginFlow(ctx)
			if err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
		}

		logout, err := a.ui.MainLoop(ctx, username)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		// Explicit logout drops the durable token; a server-forced logout
		// already did through the transport middleware. Clear is idempotent.
		if err = a.tokens.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		a.notes.ResetSession()
	}
}

// restoreSession reads the stored token and derives the display username
// from it. An undecodable token is discarded so the user can sign in again.
func (a *App) restoreSession(ctx context.Context) (string, error) {
	token, err := a.tokens.Get(ctx)
	if err != nil {
		return "", err
	}

	username, err := adapter.UsernameFromToken(token)
	if err != nil {
		a.log.Warn().Err(err).Msg("stored token is not decodable, dropping it")
		if clearErr := a.tokens.Clear(ctx); clearErr != nil {
			return "", clearErr
		}
		return "", store.ErrNoToken
	}

	a.log.Info().Str("username", username).Msg("session restored")
	return username, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
