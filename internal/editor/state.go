// Package editor holds the note-editing state machine of the notka client:
// the cached note collection and the two editing surfaces that mediate every
// mutation to it.
//
// There are two independent concerns, each modelled as a tagged state rather
// than a set of boolean flags:
//
//   - Compose: the inline form, shared between "create" (no target id) and
//     "edit in place" (target id set). One draft buffer backs both.
//   - View: an overlay showing one note with its own local snapshot that can
//     be edited and saved independently of the compose draft.
//
// Both may be active at the same time. When both surfaces edit the same note
// the last saved response wins; that is a documented policy, not an accident.
// All cache mutations flow through the Apply*/Finish* methods, driven by
// completion events of the transport calls, so the collection invariants
// (unique ids, create-at-head, order-preserving update/delete) hold for any
// interleaving of operations.
package editor

import (
	"errors"

	"github.com/avoronov/notka/models"
)

var (
	ErrNotComposing = errors.New("no compose form is open")
	ErrNotViewing   = errors.New("no note is open for viewing")
	ErrUnknownNote  = errors.New("note is not in the cache")
)

// Compose is the inline form state. TargetID == nil means a new note is
// being created; otherwise the note with *TargetID is edited in place.
type Compose struct {
	Title    string
	Content  string
	TargetID *int64
}

// View is the overlay state: the cached note as it was when opened, plus
// locally edited fields that are not written to the cache until a save
// round-trips through the server.
type View struct {
	Note    models.Note
	Title   string
	Content string
}

// SubmitAction describes the transport call a surface wants performed:
// a create when TargetID is nil, otherwise an update of *TargetID.
type SubmitAction struct {
	TargetID *int64
	Title    string
	Content  string
}

// State is the note-editing state machine. The zero value is ready to use:
// empty cache, no compose form, no view overlay.
type State struct {
	cache   Collection
	compose *Compose
	view    *View
}

// Cache exposes the cached note collection for rendering.
func (s *State) Cache() *Collection {
	return &s.cache
}

// Load replaces the cache from a list response.
func (s *State) Load(notes []models.Note) {
	s.cache.Reset(notes)
}

// ── compose surface ─────────────────────────────────────────────────────────

// Composing returns the active compose form, if any.
func (s *State) Composing() (Compose, bool) {
	if s.compose == nil {
		return Compose{}, false
	}
	return *s.compose, true
}

// StartCreate opens the compose form with empty draft buffers and no target.
// Any draft already present is discarded.
func (s *State) StartCreate() {
	s.compose = &Compose{}
}

// StartEdit opens the compose form pre-filled from the cached note with the
// given id. Returns ErrUnknownNote if the note is not cached.
func (s *State) StartEdit(id int64) error {
	note, ok := s.cache.Get(id)
	if !ok {
		return ErrUnknownNote
	}

	target := note.ID
	s.compose = &Compose{Title: note.Title, Content: note.Content, TargetID: &target}
	return nil
}

// SetDraft updates the compose draft buffers.
func (s *State) SetDraft(title, content string) {
	if s.compose == nil {
		return
	}
	s.compose.Title = title
	s.compose.Content = content
}

// CancelCompose closes the compose form and clears the draft.
func (s *State) CancelCompose() {
	s.compose = nil
}

// SubmitCompose returns the transport call the open compose form asks for.
// The form stays open (draft preserved) until FinishCompose reports success;
// a failed call simply never reaches FinishCompose.
func (s *State) SubmitCompose() (SubmitAction, error) {
	if s.compose == nil {
		return SubmitAction{}, ErrNotComposing
	}
	return SubmitAction{
		TargetID: s.compose.TargetID,
		Title:    s.compose.Title,
		Content:  s.compose.Content,
	}, nil
}

// FinishCompose merges a successful create/update response into the cache.
// A create goes to the head of the collection; an update replaces the cached
// entry in place. The decision comes from the submitted action, not from the
// current form: the response of a call that was in flight when the user
// cancelled (or opened a different draft) still lands in the cache, and only
// the form belonging to that submission is closed.
func (s *State) FinishCompose(action SubmitAction, saved models.Note) {
	if action.TargetID == nil {
		s.cache.Prepend(saved)
	} else {
		s.cache.Replace(saved)
	}

	if s.compose != nil && sameTarget(s.compose.TargetID, action.TargetID) {
		s.compose = nil
	}
}

func sameTarget(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// ── view surface ────────────────────────────────────────────────────────────

// Viewing returns the active view overlay, if any.
func (s *State) Viewing() (View, bool) {
	if s.view == nil {
		return View{}, false
	}
	return *s.view, true
}

// OpenView opens the overlay on the cached note with the given id. The
// overlay works on a snapshot: later cache changes do not leak into it.
func (s *State) OpenView(id int64) error {
	note, ok := s.cache.Get(id)
	if !ok {
		return ErrUnknownNote
	}

	s.view = &View{Note: note, Title: note.Title, Content: note.Content}
	return nil
}

// SetViewDraft updates the locally edited fields of the view overlay without
// touching the cache.
func (s *State) SetViewDraft(title, content string) {
	if s.view == nil {
		return
	}
	s.view.Title = title
	s.view.Content = content
}

// CloseView closes the overlay, discarding unsaved edits.
func (s *State) CloseView() {
	s.view = nil
}

// SubmitView returns the update call for the overlay's edited fields. The
// overlay stays open (edits retained) until FinishView reports success.
func (s *State) SubmitView() (SubmitAction, error) {
	if s.view == nil {
		return SubmitAction{}, ErrNotViewing
	}

	target := s.view.Note.ID
	return SubmitAction{
		TargetID: &target,
		Title:    s.view.Title,
		Content:  s.view.Content,
	}, nil
}

// FinishView merges a successful update response into the cache and closes
// the overlay, unless the overlay has meanwhile moved on to a different note.
func (s *State) FinishView(saved models.Note) {
	s.cache.Replace(saved)
	if s.view != nil && s.view.Note.ID == saved.ID {
		s.view = nil
	}
}

// ── delete ──────────────────────────────────────────────────────────────────

// ApplyDeleted removes the note from the cache after a confirmed, successful
// delete. A surface currently pointed at the deleted note is reset so it
// never references a gone entity; unrelated surfaces stay untouched. Unsaved
// view edits of the deleted note are discarded.
func (s *State) ApplyDeleted(id int64) {
	s.cache.Remove(id)

	if s.compose != nil && s.compose.TargetID != nil && *s.compose.TargetID == id {
		s.compose = nil
	}
	if s.view != nil && s.view.Note.ID == id {
		s.view = nil
	}
}
