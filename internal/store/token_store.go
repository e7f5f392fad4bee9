package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/notka/internal/logger"
)

// sessionTokenKey is the well-known kv key under which the bearer token of
// the current session is stored.
const sessionTokenKey = "session_token"

// sqliteTokenStore is the SQLite-backed implementation of [TokenStore]. The
// token survives client restarts until an explicit Clear (logout or a 401
// detected by the transport layer).
type sqliteTokenStore struct {
	db     *DB
	logger *logger.Logger
}

// NewTokenStore constructs a durable [TokenStore] on top of the local
// SQLite database.
func NewTokenStore(db *DB, log *logger.Logger) TokenStore {
	log.Debug().Msg("creating token store")
	return &sqliteTokenStore{db: db, logger: log}
}

// Set stores token as the active session token, replacing any previous one.
func (s *sqliteTokenStore) Set(ctx context.Context, token string) error {
	query, args, err := buildUpsertKVQuery(sessionTokenKey, token)
	if err != nil {
		return fmt.Errorf("build token upsert query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	return nil
}

// Get returns the active session token, or [ErrNoToken] when none is stored.
func (s *sqliteTokenStore) Get(ctx context.Context) (string, error) {
	query, args, err := buildSelectKVQuery(sessionTokenKey)
	if err != nil {
		return "", fmt.Errorf("build token select query: %w", err)
	}

	var token string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// Clear removes the stored session token. Clearing an empty store is a
// no-op, so Clear is safe to call from concurrent failure paths.
func (s *sqliteTokenStore) Clear(ctx context.Context) error {
	query, args, err := buildDeleteKVQuery(sessionTokenKey)
	if err != nil {
		return fmt.Errorf("build token delete query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}

	return nil
}
