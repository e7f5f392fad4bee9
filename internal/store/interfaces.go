// Package store provides the durable client-side session storage for notka.
//
// The only state the client persists between runs is the bearer token of the
// current session. It lives in a small key-value table in a local SQLite
// database so that a restart of the client does not force a re-login. The
// [TokenStore] interface abstracts that slot; [NewMemoryTokenStore] supplies
// an ephemeral substitute for tests and ":memory:" runs.
package store

import (
	"context"
)

// TokenStore is a durable slot holding at most one active session token.
//
// Get returns [ErrNoToken] when no token is stored. No expiry tracking is
// performed here; token validity is determined only by collaborator
// responses.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
