package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/notka/models"
)

func loadedState(notes ...models.Note) *State {
	s := &State{}
	s.Load(notes)
	return s
}

// ── compose: create ─────────────────────────────────────────────────────────

func TestCompose_CreateFlow(t *testing.T) {
	s := loadedState(models.Note{ID: 1, Title: "old"})

	s.StartCreate()
	compose, ok := s.Composing()
	require.True(t, ok)
	assert.Empty(t, compose.Title)
	assert.Empty(t, compose.Content)
	assert.Nil(t, compose.TargetID)

	s.SetDraft("Groceries", "Milk, eggs")

	action, err := s.SubmitCompose()
	require.NoError(t, err)
	assert.Nil(t, action.TargetID)
	assert.Equal(t, "Groceries", action.Title)
	assert.Equal(t, "Milk, eggs", action.Content)

	// Server assigned id 7; the note lands at the head and the form closes.
	s.FinishCompose(action, models.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"})

	_, ok = s.Composing()
	assert.False(t, ok)

	head, ok := s.Cache().At(0)
	require.True(t, ok)
	assert.Equal(t, int64(7), head.ID)
	assert.Equal(t, "Groceries", head.Title)
	assert.Equal(t, "Milk, eggs", head.Content)
	assert.Equal(t, 2, s.Cache().Len())
}

func TestCompose_StartCreateResetsDraft(t *testing.T) {
	s := loadedState(models.Note{ID: 5, Title: "A", Content: "B"})

	require.NoError(t, s.StartEdit(5))
	s.SetDraft("A2", "B2")

	s.StartCreate()

	compose, ok := s.Composing()
	require.True(t, ok)
	assert.Empty(t, compose.Title)
	assert.Nil(t, compose.TargetID)
}

// ── compose: edit in place ──────────────────────────────────────────────────

func TestCompose_EditFlow(t *testing.T) {
	s := loadedState(
		models.Note{ID: 9, Title: "top"},
		models.Note{ID: 5, Title: "A", Content: "B"},
		models.Note{ID: 2, Title: "bottom"},
	)

	require.NoError(t, s.StartEdit(5))

	compose, ok := s.Composing()
	require.True(t, ok)
	assert.Equal(t, "A", compose.Title)
	assert.Equal(t, "B", compose.Content)
	require.NotNil(t, compose.TargetID)
	assert.Equal(t, int64(5), *compose.TargetID)

	s.SetDraft("A2", "B2")

	action, err := s.SubmitCompose()
	require.NoError(t, err)
	require.NotNil(t, action.TargetID)
	assert.Equal(t, int64(5), *action.TargetID)

	s.FinishCompose(action, models.Note{ID: 5, Title: "A2", Content: "B2"})

	// Position unchanged, fields replaced, state back to idle.
	assert.Equal(t, []int64{9, 5, 2}, ids(s.Cache()))
	got, _ := s.Cache().Get(5)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, "B2", got.Content)

	_, ok = s.Composing()
	assert.False(t, ok)
}

func TestCompose_StartEditUnknownNote(t *testing.T) {
	s := loadedState(models.Note{ID: 1})

	err := s.StartEdit(42)

	assert.ErrorIs(t, err, ErrUnknownNote)
	_, ok := s.Composing()
	assert.False(t, ok)
}

func TestCompose_FailedSubmitKeepsDraft(t *testing.T) {
	s := loadedState()
	s.StartCreate()
	s.SetDraft("Groceries", "Milk, eggs")

	_, err := s.SubmitCompose()
	require.NoError(t, err)

	// The transport call failed: FinishCompose is never invoked. The form
	// stays open with the draft intact, ready for a manual retry.
	compose, ok := s.Composing()
	require.True(t, ok)
	assert.Equal(t, "Groceries", compose.Title)
	assert.Equal(t, "Milk, eggs", compose.Content)
	assert.Zero(t, s.Cache().Len())
}

func TestCompose_CreateResponseAfterCancelStillCached(t *testing.T) {
	s := loadedState(models.Note{ID: 1, Title: "old"})

	s.StartCreate()
	s.SetDraft("Groceries", "Milk, eggs")
	action, err := s.SubmitCompose()
	require.NoError(t, err)

	// The form is cancelled while the create call is still in flight. The
	// server created the note regardless, so the response must enter the
	// cache at the head.
	s.CancelCompose()

	s.FinishCompose(action, models.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"})

	got, ok := s.Cache().Get(7)
	require.True(t, ok, "note created on the server must be in the cache")
	assert.Equal(t, "Groceries", got.Title)

	head, ok := s.Cache().At(0)
	require.True(t, ok)
	assert.Equal(t, int64(7), head.ID)

	_, composing := s.Composing()
	assert.False(t, composing)
}

func TestCompose_CreateResponseLeavesNewerEditOpen(t *testing.T) {
	s := loadedState(models.Note{ID: 3, Title: "other"})

	s.StartCreate()
	s.SetDraft("Groceries", "Milk, eggs")
	action, err := s.SubmitCompose()
	require.NoError(t, err)

	// While the create is in flight the user cancels and starts editing a
	// different note. The late response still lands in the cache but must
	// not close the newer form.
	s.CancelCompose()
	require.NoError(t, s.StartEdit(3))

	s.FinishCompose(action, models.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"})

	_, ok := s.Cache().Get(7)
	assert.True(t, ok)

	compose, composing := s.Composing()
	require.True(t, composing, "an edit started after the cancel must stay open")
	require.NotNil(t, compose.TargetID)
	assert.Equal(t, int64(3), *compose.TargetID)
}

func TestCompose_Cancel(t *testing.T) {
	s := loadedState()
	s.StartCreate()
	s.SetDraft("x", "y")

	s.CancelCompose()

	_, ok := s.Composing()
	assert.False(t, ok)

	_, err := s.SubmitCompose()
	assert.ErrorIs(t, err, ErrNotComposing)
}

// ── view overlay ────────────────────────────────────────────────────────────

func TestView_OpenEditSave(t *testing.T) {
	s := loadedState(
		models.Note{ID: 9},
		models.Note{ID: 5, Title: "A", Content: "B"},
	)

	require.NoError(t, s.OpenView(5))

	view, ok := s.Viewing()
	require.True(t, ok)
	assert.Equal(t, int64(5), view.Note.ID)
	assert.Equal(t, "A", view.Title)

	// Local edits touch only the overlay snapshot, never the cache.
	s.SetViewDraft("A2", "B2")
	cached, _ := s.Cache().Get(5)
	assert.Equal(t, "A", cached.Title)

	action, err := s.SubmitView()
	require.NoError(t, err)
	require.NotNil(t, action.TargetID)
	assert.Equal(t, int64(5), *action.TargetID)
	assert.Equal(t, "A2", action.Title)

	s.FinishView(models.Note{ID: 5, Title: "A2", Content: "B2"})

	assert.Equal(t, []int64{9, 5}, ids(s.Cache()))
	cached, _ = s.Cache().Get(5)
	assert.Equal(t, "A2", cached.Title)

	_, ok = s.Viewing()
	assert.False(t, ok)
}

func TestView_FailedSaveKeepsOverlayOpen(t *testing.T) {
	s := loadedState(models.Note{ID: 5, Title: "A", Content: "B"})

	require.NoError(t, s.OpenView(5))
	s.SetViewDraft("A2", "B2")

	_, err := s.SubmitView()
	require.NoError(t, err)

	// Update failed: overlay stays open with the edited fields retained,
	// and the cache still holds the server state.
	view, ok := s.Viewing()
	require.True(t, ok)
	assert.Equal(t, "A2", view.Title)
	cached, _ := s.Cache().Get(5)
	assert.Equal(t, "A", cached.Title)
}

func TestView_SaveResponseAfterReopenKeepsNewerOverlay(t *testing.T) {
	s := loadedState(
		models.Note{ID: 5, Title: "A", Content: "B"},
		models.Note{ID: 9, Title: "other"},
	)

	require.NoError(t, s.OpenView(5))
	s.SetViewDraft("A2", "B2")
	_, err := s.SubmitView()
	require.NoError(t, err)

	// The overlay moves to another note while the update is in flight. The
	// late response still updates the cache but leaves the new overlay open.
	s.CloseView()
	require.NoError(t, s.OpenView(9))

	s.FinishView(models.Note{ID: 5, Title: "A2", Content: "B2"})

	cached, _ := s.Cache().Get(5)
	assert.Equal(t, "A2", cached.Title)

	view, viewing := s.Viewing()
	require.True(t, viewing)
	assert.Equal(t, int64(9), view.Note.ID)
}

func TestView_Close(t *testing.T) {
	s := loadedState(models.Note{ID: 5})

	require.NoError(t, s.OpenView(5))
	s.CloseView()

	_, ok := s.Viewing()
	assert.False(t, ok)

	_, err := s.SubmitView()
	assert.ErrorIs(t, err, ErrNotViewing)
}

func TestView_OpenUnknownNote(t *testing.T) {
	s := loadedState()
	assert.ErrorIs(t, s.OpenView(1), ErrUnknownNote)
}

// ── compose and view at the same time ───────────────────────────────────────

func TestComposeAndView_Simultaneous(t *testing.T) {
	s := loadedState(models.Note{ID: 5, Title: "A", Content: "B"})

	require.NoError(t, s.StartEdit(5))
	require.NoError(t, s.OpenView(5))

	s.SetDraft("from-compose", "c")
	s.SetViewDraft("from-view", "v")

	// Both surfaces hold independent drafts of the same note.
	compose, _ := s.Composing()
	view, _ := s.Viewing()
	assert.Equal(t, "from-compose", compose.Title)
	assert.Equal(t, "from-view", view.Title)

	// Whichever surface saves last determines the cached fields.
	action, err := s.SubmitCompose()
	require.NoError(t, err)
	s.FinishCompose(action, models.Note{ID: 5, Title: "from-compose", Content: "c"})
	s.FinishView(models.Note{ID: 5, Title: "from-view", Content: "v"})

	cached, _ := s.Cache().Get(5)
	assert.Equal(t, "from-view", cached.Title)
	assert.Equal(t, 1, s.Cache().Len())
}

// ── delete ──────────────────────────────────────────────────────────────────

func TestApplyDeleted_ResetsTargetedSurfaces(t *testing.T) {
	s := loadedState(models.Note{ID: 5}, models.Note{ID: 3})

	require.NoError(t, s.StartEdit(5))
	require.NoError(t, s.OpenView(5))

	s.ApplyDeleted(5)

	assert.Equal(t, []int64{3}, ids(s.Cache()))
	_, composing := s.Composing()
	_, viewing := s.Viewing()
	assert.False(t, composing, "compose targeting the deleted note must reset")
	assert.False(t, viewing, "view of the deleted note must reset")
}

func TestApplyDeleted_LeavesUnrelatedSurfacesAlone(t *testing.T) {
	s := loadedState(models.Note{ID: 5}, models.Note{ID: 3})

	require.NoError(t, s.StartEdit(3))
	require.NoError(t, s.OpenView(3))

	s.ApplyDeleted(5)

	assert.Equal(t, []int64{3}, ids(s.Cache()))
	compose, composing := s.Composing()
	_, viewing := s.Viewing()
	assert.True(t, composing)
	assert.True(t, viewing)
	require.NotNil(t, compose.TargetID)
	assert.Equal(t, int64(3), *compose.TargetID)
}

func TestApplyDeleted_CreateDraftSurvives(t *testing.T) {
	s := loadedState(models.Note{ID: 5})

	s.StartCreate()
	s.SetDraft("unsaved", "draft")

	s.ApplyDeleted(5)

	compose, ok := s.Composing()
	require.True(t, ok, "a create draft targets no note and must survive deletes")
	assert.Equal(t, "unsaved", compose.Title)
}
