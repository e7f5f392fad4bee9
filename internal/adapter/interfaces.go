// Package adapter provides the transport layer for communicating with the
// two backend collaborators of notka: the authentication service and the
// notes service.
//
// [AuthAdapter] and [NotesAdapter] decouple the rest of the client from the
// wire protocol. The HTTP implementations are built on resty; the notes
// client carries the request-authorization policy as resty middleware: the
// bearer token is injected on the way out, and a 401 on the way in clears
// the durable token store and fires a session-expired callback exactly once
// per session.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/avoronov/notka/models"
)

// AuthAdapter performs credential exchange with the authentication service.
// It owns no session state: callers are responsible for persisting the
// returned token.
type AuthAdapter interface {
	// Login exchanges the credentials for a bearer token via the
	// form-encoded token endpoint. Rejected credentials surface as
	// [ErrInvalidCredentials]; any other failure is a transport error.
	Login(ctx context.Context, creds models.Credentials) (models.Token, error)

	// Register creates a new account via the JSON registration endpoint.
	// A taken username surfaces as [ErrUsernameTaken]. Passwords longer
	// than [MaxPasswordLength] fail fast with [ErrPasswordTooLong] before
	// any request is issued.
	Register(ctx context.Context, creds models.Credentials) (models.RegisterResult, error)
}

// NotesAdapter performs CRUD against the notes service. Every call passes
// through the authorization middleware; a 401 response makes the call fail
// with [ErrUnauthorized], which is terminal for the current session and must
// not be retried.
type NotesAdapter interface {
	// List returns all notes of the authenticated user in the order the
	// server stores them.
	List(ctx context.Context) ([]models.Note, error)

	// Create stores a new note and returns it with the server-assigned id.
	Create(ctx context.Context, title, content string) (models.Note, error)

	// Update replaces title and content of the note with the given id and
	// returns the updated note. The id never changes.
	Update(ctx context.Context, id int64, title, content string) (models.Note, error)

	// Delete removes the note with the given id.
	Delete(ctx context.Context, id int64) error

	// ResetSession re-arms the session-expired guard after a fresh login,
	// so that the next 401 fires the expiry path again.
	ResetSession()
}
