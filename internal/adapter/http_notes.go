package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/internal/store"
	"github.com/avoronov/notka/models"
)

type httpNotesAdapter struct {
	client *resty.Client
	tokens store.TokenStore
	logger *logger.Logger

	// expired flips to true on the first 401 of a session and stays set
	// until ResetSession. It keeps concurrent in-flight failures from
	// clearing the store and firing onSessionExpired more than once.
	expired          atomic.Bool
	onSessionExpired func()
}

// NewHTTPNotesAdapter constructs an HTTP implementation of [NotesAdapter]
// against the notes service at baseURL.
//
// tokens supplies the bearer credential attached to every outbound request.
// onSessionExpired (optional) is invoked at most once per session, after the
// token store has been cleared in reaction to a 401; the hosting application
// uses it to drop back into the login flow. The adapter itself has no
// dependency on any navigation facility.
func NewHTTPNotesAdapter(baseURL string, timeout time.Duration, tokens store.TokenStore, onSessionExpired func(), log *logger.Logger) (NotesAdapter, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid notes service address: %w", err)
	}

	n := &httpNotesAdapter{
		tokens:           tokens,
		logger:           log,
		onSessionExpired: onSessionExpired,
	}

	cli := resty.New().
		SetBaseURL(normalized).
		SetTimeout(timeout)
	cli.OnBeforeRequest(n.authorizeRequest)
	cli.OnAfterResponse(n.detectSessionExpiry)
	n.client = cli

	return n, nil
}

// authorizeRequest is the outbound half of the authorization policy: it tags
// the request with a trace id and attaches the stored bearer token when one
// exists. An absent token sends the request unauthenticated and lets the
// server reject it.
func (n *httpNotesAdapter) authorizeRequest(_ *resty.Client, req *resty.Request) error {
	req.SetHeader("X-Request-ID", uuid.NewString())

	token, err := n.tokens.Get(req.Context())
	if errors.Is(err, store.ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}

	req.SetHeader("Authorization", "Bearer "+token)
	return nil
}

// detectSessionExpiry is the inbound half of the authorization policy. The
// first 401 of a session clears the token store and fires the
// session-expired callback; later 401s from concurrent in-flight requests
// only map to [ErrUnauthorized] at the call sites.
func (n *httpNotesAdapter) detectSessionExpiry(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}

	if !n.expired.CompareAndSwap(false, true) {
		return nil
	}

	ctx := resp.Request.Context()
	if err := n.tokens.Clear(ctx); err != nil {
		n.logger.Err(err).Msg("clear session token after 401")
	}
	n.logger.Info().Msg("session expired, token cleared")

	if n.onSessionExpired != nil {
		n.onSessionExpired()
	}
	return nil
}

// ResetSession implements [NotesAdapter]. Call it after a fresh login so the
// next 401 triggers the expiry path again.
func (n *httpNotesAdapter) ResetSession() {
	n.expired.Store(false)
}

// List implements [NotesAdapter]. GET /notes/ returns the user's notes in
// server storage order.
func (n *httpNotesAdapter) List(ctx context.Context) ([]models.Note, error) {
	resp, err := n.client.R().
		SetContext(ctx).
		Get("/notes/")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("decode notes list: %w", err)
	}

	return notes, nil
}

// Create implements [NotesAdapter]. POST /notes/ with a JSON body; the
// server assigns the id.
func (n *httpNotesAdapter) Create(ctx context.Context, title, content string) (models.Note, error) {
	var note models.Note

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NoteRequest{Title: title, Content: content}).
		SetResult(&note).
		Post("/notes/")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// Update implements [NotesAdapter]. PUT /notes/{id} fully replaces title and
// content; the id is preserved by the server.
func (n *httpNotesAdapter) Update(ctx context.Context, id int64, title, content string) (models.Note, error) {
	var note models.Note

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NoteRequest{Title: title, Content: content}).
		SetResult(&note).
		Put("/notes/" + strconv.FormatInt(id, 10))
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// Delete implements [NotesAdapter]. DELETE /notes/{id}.
func (n *httpNotesAdapter) Delete(ctx context.Context, id int64) error {
	resp, err := n.client.R().
		SetContext(ctx).
		Delete("/notes/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}
