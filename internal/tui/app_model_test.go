package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/notka/internal/editor"
	"github.com/avoronov/notka/internal/store"
	"github.com/avoronov/notka/models"
)

func newTestDashboard(t *testing.T, notes ...models.Note) appModel {
	t.Helper()
	m := newMainAppModel(context.Background(), nil, nil, store.NewMemoryTokenStore(), "alice")
	m.state.Load(notes)
	m.list.loading = false
	return m
}

func openCompose(t *testing.T, m appModel, title, content string) appModel {
	t.Helper()
	m.state.StartCreate()
	draft, ok := m.state.Composing()
	require.True(t, ok)
	m.compose = newComposeModel(draft)
	m.compose.inputs[0].SetValue(title)
	m.compose.inputs[1].SetValue(content)
	m.currentScreen = screenCompose
	return m
}

func pressEnter(t *testing.T, m appModel) (appModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, ok := updated.(appModel)
	require.True(t, ok)
	return next, cmd
}

// ── form validation ─────────────────────────────────────────────────────────

func TestComposeSubmit_RequiresTitleAndContent(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "", content: "Milk, eggs"},
		{name: "blank title", title: "   ", content: "Milk, eggs"},
		{name: "empty content", title: "Groceries", content: ""},
		{name: "blank content", title: "Groceries", content: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := openCompose(t, newTestDashboard(t), tt.title, tt.content)

			next, cmd := pressEnter(t, m)

			assert.Nil(t, cmd, "no request may be dispatched")
			assert.True(t, next.showError)
			assert.False(t, next.compose.submitting)

			// The form stays open with the typed input intact.
			_, composing := next.state.Composing()
			assert.True(t, composing)
			assert.Equal(t, tt.title, next.compose.title())
		})
	}
}

func TestComposeSubmit_ValidInputDispatches(t *testing.T) {
	m := openCompose(t, newTestDashboard(t), "Groceries", "Milk, eggs")

	next, cmd := pressEnter(t, m)

	assert.NotNil(t, cmd)
	assert.False(t, next.showError)
	assert.True(t, next.compose.submitting)
}

func TestViewSubmit_RequiresTitleAndContent(t *testing.T) {
	m := newTestDashboard(t, models.Note{ID: 5, Title: "A", Content: "B"})
	require.NoError(t, m.state.OpenView(5))
	view, ok := m.state.Viewing()
	require.True(t, ok)
	m.view = newViewModel(view)
	m.view.inputs[1].SetValue("   ")
	m.currentScreen = screenView

	next, cmd := pressEnter(t, m)

	assert.Nil(t, cmd, "no request may be dispatched")
	assert.True(t, next.showError)
	assert.False(t, next.view.submitting)

	_, viewing := next.state.Viewing()
	assert.True(t, viewing)
}

// ── save responses ──────────────────────────────────────────────────────────

func TestLateCreateResponse_EntersCache(t *testing.T) {
	m := newTestDashboard(t, models.Note{ID: 1, Title: "old"})

	// The compose form was cancelled while the create call was in flight;
	// the response arrives with no form open.
	updated, _ := m.Update(noteSavedMsg{
		action: editor.SubmitAction{Title: "Groceries", Content: "Milk, eggs"},
		note:   models.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"},
	})
	next, ok := updated.(appModel)
	require.True(t, ok)

	head, ok := next.state.Cache().At(0)
	require.True(t, ok)
	assert.Equal(t, int64(7), head.ID)
	assert.Equal(t, 2, next.state.Cache().Len())
	assert.Equal(t, screenList, next.currentScreen)
}

// ── clipboard ───────────────────────────────────────────────────────────────

func TestCopiedStatus_ScopedToActiveScreen(t *testing.T) {
	m := newTestDashboard(t, models.Note{ID: 5, Title: "A", Content: "B"})

	m.currentScreen = screenView
	updated, _ := m.Update(copiedMsg{})
	next := updated.(appModel)
	assert.Equal(t, "Copied!", next.view.status)
	assert.Empty(t, next.list.status)

	m.currentScreen = screenList
	updated, _ = m.Update(copiedMsg{})
	next = updated.(appModel)
	assert.Equal(t, "Copied!", next.list.status)
	assert.Empty(t, next.view.status)
}

func TestCopyFailure_ShowsErrorAndKeepsSubmitState(t *testing.T) {
	m := newTestDashboard(t)
	m.compose.submitting = true

	updated, cmd := m.Update(copyFailedMsg{err: errors.New("no clipboard utilities found")})
	next := updated.(appModel)

	assert.Nil(t, cmd)
	assert.True(t, next.showError)
	assert.Contains(t, next.errorOverlay.message, "no clipboard utilities")
	assert.True(t, next.compose.submitting, "a copy failure must not touch in-flight submits")
}
